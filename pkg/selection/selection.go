// Package selection parses the operator's choice of menu entries.
//
// Grammar:
//
//	expression := "all" | term ("," term)*
//	term       := INTEGER | INTEGER "-" INTEGER
//
// Indices are 1-based. Ranges are inclusive and empty when reversed.
// Duplicates collapse and indices outside the menu are ignored; the
// result is always in ascending order.
package selection

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const keywordAll = "all"

var (
	// ErrNoInput is returned for blank input. Callers re-prompt silently.
	ErrNoInput = errors.New("no selection entered")

	// ErrMalformed is returned when a term is not an index or a range.
	ErrMalformed = errors.New("malformed selection")

	// ErrEmpty is returned when a well-formed expression selects nothing.
	ErrEmpty = errors.New("nothing selected")
)

// MalformedError reports the offending term. It matches ErrMalformed.
type MalformedError struct {
	Term string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMalformed, e.Term)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// Parse resolves expr against a menu of size entries and returns the
// chosen 1-based indices in ascending order.
func Parse(expr string, size int) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrNoInput
	}
	size = max(size, 0)

	// chosen[i] marks index i; walking it upwards yields sorted output.
	chosen := make([]bool, size+1)

	if strings.EqualFold(expr, keywordAll) {
		for i := 1; i <= size; i++ {
			chosen[i] = true
		}
	} else {
		for _, term := range strings.Split(expr, ",") {
			from, to, err := parseTerm(term)
			if err != nil {
				return nil, err
			}

			for i := max(from, 1); i <= min(to, size); i++ {
				chosen[i] = true
			}
		}
	}

	indices := make([]int, 0, size)
	for i, ok := range chosen {
		if ok {
			indices = append(indices, i)
		}
	}

	if len(indices) == 0 {
		return nil, ErrEmpty
	}
	return indices, nil
}

// parseTerm returns the inclusive bounds of a single term. A bare index
// yields equal bounds.
func parseTerm(term string) (from, to int, err error) {
	term = strings.TrimSpace(term)
	bounds := strings.Split(term, "-")

	switch len(bounds) {
	case 1:
		from, err = parseIndex(term, bounds[0])
		return from, from, err
	case 2:
		if from, err = parseIndex(term, bounds[0]); err != nil {
			return 0, 0, err
		}
		if to, err = parseIndex(term, bounds[1]); err != nil {
			return 0, 0, err
		}
		return from, to, nil
	default:
		return 0, 0, &MalformedError{Term: term}
	}
}

// parseIndex reads one bound. Integers too large for int are still
// integers; they saturate and fall outside any menu.
func parseIndex(term, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, nil
	}
	if err != nil {
		return 0, &MalformedError{Term: term}
	}
	return n, nil
}

// Resolve maps 1-based indices to items, skipping indices out of range.
func Resolve[T any](indices []int, items []T) []T {
	out := make([]T, 0, len(indices))
	for _, idx := range indices {
		if idx >= 1 && idx <= len(items) {
			out = append(out, items[idx-1])
		}
	}
	return out
}
