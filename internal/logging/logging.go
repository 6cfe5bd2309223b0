// Package logging holds the logger defaults used across featkit.
package logging

import (
	"io"
	"log/slog"
)

// Nop returns a logger that discards all output.
// Features fall back to it when no logger is configured.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}

	return l
}
