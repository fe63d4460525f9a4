// Package logger is the diagnostic channel of bharatgpt.
//
// It wraps a zerolog.Logger and exposes component-tagged helpers. Provider
// failures are reported here and never shown to the user verbatim.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level is a logging threshold
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	closer io.Closer
)

// Options configures the global logger
type Options struct {
	Level   Level
	File    string // JSON lines are written here when set
	Console bool   // human-readable output on stderr
}

// ParseLevel converts a level name into a zerolog level. Unknown names map to info.
func ParseLevel(s string) zerolog.Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn, "warning":
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Configure replaces the global logger. With neither a file nor console
// output enabled, logging is discarded.
func Configure(opts Options) error {
	var writers []io.Writer
	var file *os.File

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	if file != nil {
		closer = file
	}
	base = zerolog.New(out).With().Timestamp().Logger().Level(ParseLevel(string(opts.Level)))
	return nil
}

// SetOutput sends JSON lines to w. Intended for tests.
func SetOutput(w io.Writer, level Level) {
	mu.Lock()
	defer mu.Unlock()
	base = zerolog.New(w).Level(ParseLevel(string(level)))
}

// Close releases the log file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// Get returns the current global logger
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func emit(ev *zerolog.Event, component, msg string, fields map[string]interface{}) {
	if component != "" {
		ev = ev.Str("component", component)
	}
	if len(fields) > 0 {
		ev = ev.Fields(fields)
	}
	ev.Msg(msg)
}

// DebugCF logs a debug message for component with fields
func DebugCF(component, msg string, fields map[string]interface{}) {
	l := Get()
	emit(l.Debug(), component, msg, fields)
}

// InfoCF logs an info message for component with fields
func InfoCF(component, msg string, fields map[string]interface{}) {
	l := Get()
	emit(l.Info(), component, msg, fields)
}

// WarnCF logs a warning for component with fields
func WarnCF(component, msg string, fields map[string]interface{}) {
	l := Get()
	emit(l.Warn(), component, msg, fields)
}

// ErrorCF logs an error for component with fields
func ErrorCF(component, msg string, fields map[string]interface{}) {
	l := Get()
	emit(l.Error(), component, msg, fields)
}

// InfoC logs an info message for component
func InfoC(component, msg string) {
	InfoCF(component, msg, nil)
}

// ErrorC logs an error message for component
func ErrorC(component, msg string) {
	ErrorCF(component, msg, nil)
}
