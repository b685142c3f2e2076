// Package logging builds the application logger. The terminal belongs to
// the UI, so logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New returns a JSON logger appending to path and a function closing the
// file. An empty path gives a discarding logger. If the file cannot be
// opened the discarding logger is returned along with the error.
func New(path string, level slog.Level) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), noop, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), noop, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), noop, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f.Close, nil
}
