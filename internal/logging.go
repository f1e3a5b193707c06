package internal

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the logrus logger every component's diagnostic
// tracing goes through (SPEC_FULL.md §4.6). Output always goes to the
// given writer (stderr in the CLI), never stdout, so debug tracing
// never contaminates a program's own printed output. level follows
// logrus's own names ("debug", "info", "warn", ...); an unrecognized
// name falls back to Info rather than failing the whole run.
func NewLogger(out io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: false,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// ComponentLogger returns the *logrus.Entry every lexer/parser/
// interpreter/heap instance logs through, pre-tagged with which
// subcommand invoked it.
func ComponentLogger(logger *logrus.Logger, subcommand string) *logrus.Entry {
	return logger.WithField("subcommand", subcommand)
}
