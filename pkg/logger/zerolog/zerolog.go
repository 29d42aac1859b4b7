// Package zerolog implements logger.Logger on top of rs/zerolog.
package zerolog

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the zerolog backend.
type Options struct {
	Level          string
	DateTimeLayout string
	Colored        bool
	JSON           bool
	Out            io.Writer
}

// New builds a zerolog logger writing to opts.Out. Console output is used
// unless JSON is requested.
func New(opts Options) (*Adapter, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	if opts.DateTimeLayout == "" {
		opts.DateTimeLayout = time.DateTime
	}

	var out io.Writer = opts.Out
	if !opts.JSON {
		out = consoleWriter(opts)
	}

	log := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Stack().
		Logger()

	return NewAdapter(&log), nil
}

func consoleWriter(opts Options) zerolog.ConsoleWriter {
	output := zerolog.ConsoleWriter{
		Out:        opts.Out,
		NoColor:    !opts.Colored,
		TimeFormat: opts.DateTimeLayout,
	}

	if opts.Colored {
		output.FormatLevel = formatLevel
		output.FormatCaller = formatCaller
		output.FormatTimestamp = func(i any) string {
			return formatTimestamp(i, opts.DateTimeLayout)
		}
	}

	return output
}

func formatLevel(i any) string {
	level, _ := i.(string)

	switch level {
	case zerolog.LevelTraceValue, zerolog.LevelDebugValue:
		return term.Cyanf("[%s]", strings.ToUpper(level[:3]))
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WRN]")
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return term.Redf("[%s]", strings.ToUpper(level[:3]))
	default:
		return term.Whitef("[???]")
	}
}

func formatCaller(i any) string {
	name, ok := i.(string)
	if !ok || name == "" {
		return ""
	}
	return term.Yellowf("[%s]", filepath.Base(name))
}

func formatTimestamp(i any, layout string) string {
	raw, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}

	ts, err := time.ParseInLocation(time.RFC3339, raw, time.Local)
	if err == nil {
		raw = ts.In(time.Local).Format(layout)
	}

	return term.Cyanf("[%s]", raw)
}
