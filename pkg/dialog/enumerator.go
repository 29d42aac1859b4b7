package dialog

import (
	"context"
	"iter"
)

// DefaultLimit is the number of dialogs fetched when no limit is given.
const DefaultLimit = 100

// Enumerator yields at most limit records from a Source. It can be
// iterated once.
type Enumerator struct {
	source   Source
	limit    int
	consumed bool
}

func NewEnumerator(source Source, limit int) *Enumerator {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Enumerator{source: source, limit: limit}
}

// Limit returns the maximum number of records the enumerator yields.
func (e *Enumerator) Limit() int {
	return e.limit
}

// All yields normalized records in arrival order. A source failure is
// yielded once, unmodified, as the last element.
func (e *Enumerator) All(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if e.consumed {
			yield(Record{}, ErrConsumed)
			return
		}
		e.consumed = true

		it := e.source.Dialogs(ctx, e.limit)
		for n := 0; n < e.limit && it.Next(ctx); n++ {
			if !yield(Normalize(it.Value()), nil) {
				return
			}
		}

		if err := it.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}
