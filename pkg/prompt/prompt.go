// Package prompt reads operator input one line at a time without
// blocking cancellation.
package prompt

import (
	"bufio"
	"context"
	"io"
	"sync"
)

type line struct {
	text string
	err  error
}

// Reader hands out lines from a shared input. A read abandoned because its
// context ended stays pending and its line goes to the next caller, so at
// most one goroutine ever reads the underlying input.
type Reader struct {
	in *bufio.Reader

	mu      sync.Mutex
	pending chan line
}

// NewReader wraps in. A *Reader is returned as is and a *bufio.Reader is
// used without another buffer on top.
func NewReader(in io.Reader) *Reader {
	switch r := in.(type) {
	case *Reader:
		return r
	case *bufio.Reader:
		return &Reader{in: r}
	default:
		return &Reader{in: bufio.NewReader(in)}
	}
}

// ReadLine returns the next line including its newline, or ctx.Err() as
// soon as ctx ends. A final line without a newline is returned with a nil
// error; io.EOF is only returned once the input is exhausted.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		result := make(chan line, 1)
		go func() {
			text, err := r.in.ReadString('\n')
			if err == io.EOF && text != "" {
				err = nil
			}
			result <- line{text: text, err: err}
		}()
		r.pending = result
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-r.pending:
		r.pending = nil
		return l.text, l.err
	}
}
