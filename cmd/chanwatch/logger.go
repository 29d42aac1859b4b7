package main

import (
	"os"

	"github.com/raykavin/chanwatch/pkg/logger"
	"github.com/raykavin/chanwatch/pkg/logger/zerolog"
	"golang.org/x/term"
)

// newLogger writes to stderr so stdout carries only the menu and results.
func newLogger(level string) (logger.Logger, error) {
	log, err := zerolog.New(zerolog.Options{
		Level:          level,
		DateTimeLayout: "2006-01-02 15:04:05",
		Colored:        term.IsTerminal(int(os.Stderr.Fd())),
		Out:            os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}
