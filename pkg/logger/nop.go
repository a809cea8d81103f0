package logger

import (
	"io"
	"log/slog"
)

// NewNop returns a logger that drops everything. Handy in tests.
func NewNop() *Logger {
	return &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
