// Package tslog wires the ambient structured-logging stack used throughout
// treesearch: github.com/joeycumines/logiface as the logging interface,
// backed by github.com/joeycumines/stumpy. A nil *Logger is a safe,
// allocation-light no-op (logiface's own "undefined logger" contract), so
// passing no logger anywhere in this module is always valid.
package tslog

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the concrete logger type threaded through every treesearch
// package that reports diagnostics: runtime control improvements, fork/merge
// accounting, and parallel-region telemetry.
type Logger = *logiface.Logger[*stumpy.Event]

// New returns a Logger writing newline-delimited JSON to w at the given
// minimum level.
func New(w io.Writer, level logiface.Level) Logger {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
	)
}

// Stderr returns a Logger writing to os.Stderr at Info level, the default
// used by the example programs and CLI.
func Stderr() Logger {
	return New(os.Stderr, logiface.LevelInformational)
}

// Discard returns a Logger that drops every event; useful in tests and
// library callers who configure no logger of their own.
func Discard() Logger {
	return New(io.Discard, logiface.LevelEmergency)
}
