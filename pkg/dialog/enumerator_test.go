package dialog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/raykavin/chanwatch/pkg/dialog"
	"github.com/raykavin/chanwatch/pkg/dialog/dialogtest"
	"github.com/stretchr/testify/require"
)

func raws(n int) []dialog.Raw {
	out := make([]dialog.Raw, n)
	for i := range out {
		out[i] = dialog.Raw{Kind: dialog.KindChannel, ID: int64(i + 1), Title: "chat"}
	}
	return out
}

func collect(t *testing.T, e *dialog.Enumerator) ([]dialog.Record, error) {
	t.Helper()
	var records []dialog.Record
	for record, err := range e.All(context.Background()) {
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

func TestEnumerator_StopsAtLimit(t *testing.T) {
	session := &dialogtest.Session{Raws: raws(10)}

	records, err := collect(t, dialog.NewEnumerator(session, 4))
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, 4, session.Fetched())
	require.EqualValues(t, 4, records[3].ID)
}

func TestEnumerator_StopsWhenExhausted(t *testing.T) {
	session := &dialogtest.Session{Raws: raws(3)}

	records, err := collect(t, dialog.NewEnumerator(session, 0))
	require.NoError(t, err)
	require.Len(t, records, 3)
}

func TestEnumerator_DefaultLimit(t *testing.T) {
	require.Equal(t, dialog.DefaultLimit, dialog.NewEnumerator(&dialogtest.Session{}, -5).Limit())
}

func TestEnumerator_PropagatesSourceError(t *testing.T) {
	pageErr := errors.New("FLOOD_WAIT")
	session := &dialogtest.Session{Raws: raws(5), FailAfter: 2, PageErr: pageErr}

	records, err := collect(t, dialog.NewEnumerator(session, 10))
	require.Len(t, records, 2)
	require.Same(t, pageErr, err)
}

func TestEnumerator_NotRestartable(t *testing.T) {
	e := dialog.NewEnumerator(&dialogtest.Session{Raws: raws(2)}, 10)

	_, err := collect(t, e)
	require.NoError(t, err)

	_, err = collect(t, e)
	require.ErrorIs(t, err, dialog.ErrConsumed)
}

func TestEnumerator_EarlyBreak(t *testing.T) {
	session := &dialogtest.Session{Raws: raws(5)}

	for range dialog.NewEnumerator(session, 10).All(context.Background()) {
		break
	}
	require.Equal(t, 1, session.Fetched())
}
