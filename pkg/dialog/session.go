package dialog

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAuth marks failures to start an authenticated platform session.
	ErrAuth = errors.New("authentication failed")

	// ErrEnumeration marks failures while paging through dialogs.
	ErrEnumeration = errors.New("dialog enumeration failed")

	// ErrConsumed is returned when an enumeration is iterated twice.
	ErrConsumed = errors.New("dialog enumeration already consumed")
)

// Account is the operator the session is logged in as.
type Account struct {
	ID        int64
	FirstName string
	Username  string
}

// Iterator walks dialogs in the order the platform returns them.
type Iterator interface {
	Next(ctx context.Context) bool
	Value() Raw
	Err() error
}

// Source hands out dialog iterators.
type Source interface {
	Dialogs(ctx context.Context, limit int) Iterator
}

// Session is an authenticated platform connection. Stop must be safe to
// call after a failed Start and more than once.
type Session interface {
	Source
	Start(ctx context.Context) (Account, error)
	Stop() error
}

// WithSession starts s, runs fn and stops s on every exit path, panics
// included.
func WithSession(ctx context.Context, s Session, fn func(ctx context.Context, account Account) error) (err error) {
	account, err := s.Start(ctx)
	if err != nil {
		return errors.Join(fmt.Errorf("%w: %w", ErrAuth, err), s.Stop())
	}

	defer func() {
		if stopErr := s.Stop(); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("stop session: %w", stopErr))
		}
	}()

	return fn(ctx, account)
}
