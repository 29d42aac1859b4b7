// Package dialogtest provides an in-memory dialog.Session for tests.
package dialogtest

import (
	"context"
	"sync"

	"github.com/raykavin/chanwatch/pkg/dialog"
)

// Session serves a fixed list of dialogs and records its lifecycle.
type Session struct {
	Account  dialog.Account
	Raws     []dialog.Raw
	StartErr error
	// FailAfter makes the iterator fail with PageErr after that many
	// dialogs. Zero disables the failure.
	FailAfter int
	PageErr   error

	mu      sync.Mutex
	started int
	stopped int
	active  bool
	fetched int
}

func (s *Session) Start(context.Context) (dialog.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.started++
	if s.StartErr != nil {
		return dialog.Account{}, s.StartErr
	}
	s.active = true
	return s.Account, nil
}

func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		s.stopped++
	}
	s.active = false
	return nil
}

// Active reports whether the session was started and not yet stopped.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Stopped returns how many started sessions were stopped.
func (s *Session) Stopped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Fetched returns how many dialogs the iterators handed out.
func (s *Session) Fetched() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetched
}

func (s *Session) Dialogs(context.Context, int) dialog.Iterator {
	return &iterator{session: s, pos: -1}
}

type iterator struct {
	session *Session
	pos     int
	err     error
}

func (it *iterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if err := ctx.Err(); err != nil {
		it.err = err
		return false
	}

	s := it.session
	next := it.pos + 1
	if s.FailAfter > 0 && next >= s.FailAfter {
		it.err = s.PageErr
		return false
	}
	if next >= len(s.Raws) {
		return false
	}

	it.pos = next
	s.mu.Lock()
	s.fetched++
	s.mu.Unlock()
	return true
}

func (it *iterator) Value() dialog.Raw { return it.session.Raws[it.pos] }
func (it *iterator) Err() error        { return it.err }
