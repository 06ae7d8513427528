// Package logger wraps zerolog for exelaunch.
//
// The TUI owns the terminal, so interactive sessions log to a file. CLI
// commands may log to stderr instead. Every entry carries a "role" field
// naming the front end that produced it.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger

	file *os.File
}

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// New returns a JSON logger writing to w at info level.
func New(role string, w io.Writer) *Logger {
	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger().
		Level(zerolog.InfoLevel)

	return &Logger{Logger: logger}
}

// NewFileLogger appends to the log file at path, creating it and its
// directory when missing. Call Close when done.
func NewFileLogger(role, path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := New(role, f)
	l.file = f
	return l, nil
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// SetDebug switches between debug and info level.
func (l *Logger) SetDebug(debug bool) {
	if debug {
		l.Logger = l.Level(zerolog.DebugLevel)
		return
	}
	l.Logger = l.Level(zerolog.InfoLevel)
}

// Component returns a child logger tagged with a component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.With().Str("component", name).Logger()}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
