package logging

import (
	"io"
	"log/slog"
	"os"
)

// DefaultLevel is what the fsmtool commands log at.
const DefaultLevel = slog.LevelInfo

// New builds a text logger on w. Error values always land under the "err"
// key, so records from every component grep the same way.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalizeKeys,
	}))
}

// NewDefault is the logger the CLI surfaces use. It writes to stderr so
// diagnostics never mix with generated output on stdout.
func NewDefault() *slog.Logger {
	return New(os.Stderr, DefaultLevel)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return New(io.Discard, DefaultLevel)
}

func normalizeKeys(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
