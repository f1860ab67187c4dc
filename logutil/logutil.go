// Package logutil configures the process logger. The TUI owns the terminal,
// so logs always go to a file.
package logutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON lines to the file at path, plus a closer
// for the underlying file.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level, path string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("parse log level: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Logger{}, closer, fmt.Errorf("open log file: %w", err)
	}
	closer = func() { _ = file.Close() }

	logger := zerolog.New(file).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return logger, closer, nil
}
