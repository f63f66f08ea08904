// Package logger sets up structured JSON logging. The TUI owns the terminal,
// so logs go to a file under the state directory.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup returns a JSON slog.Logger writing to w at the given level.
func Setup(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

// OpenFile opens path for appending, creating its directory if needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// SetupDefault installs a file logger as the global logger. The returned
// func closes the file. When the file cannot be opened logging is discarded.
func SetupDefault(path string, level slog.Leveler) (*slog.Logger, func()) {
	f, err := OpenFile(path)
	if err != nil {
		l := Setup(io.Discard, level)
		slog.SetDefault(l)
		return l, func() {}
	}
	l := Setup(f, level)
	slog.SetDefault(l)
	return l, func() { f.Close() } //nolint:errcheck
}
