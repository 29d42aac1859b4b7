// Package logger defines the logging contract shared by chanwatch packages.
package logger

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel is used for wire-level details.
	DebugLevel              // DebugLevel is used for debugging information.
	InfoLevel               // InfoLevel is used for informational messages.
	WarnLevel               // WarnLevel is used for recoverable problems.
	ErrorLevel              // ErrorLevel is used for failed operations.
	FatalLevel              // FatalLevel logs and exits the program.
	NoLevel                 // NoLevel is used when the level is unknown.
)

// Logger is implemented by the zerolog adapter and by test doubles.
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	WithError(err error) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)

	SetLevel(level Level)
	GetLevel() Level
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

type nop struct{}

func (n nop) WithField(string, any) Logger { return n }
func (n nop) WithFields(map[string]any) Logger { return n }
func (n nop) WithError(error) Logger { return n }
func (nop) Debug(...any) {}
func (nop) Info(...any) {}
func (nop) Warn(...any) {}
func (nop) Error(...any) {}
func (nop) Fatal(...any) {}
func (nop) Debugf(string, ...any) {}
func (nop) Infof(string, ...any) {}
func (nop) Warnf(string, ...any) {}
func (nop) Errorf(string, ...any) {}
func (nop) Fatalf(string, ...any) {}
func (nop) SetLevel(Level) {}
func (nop) GetLevel() Level { return Disabled }
