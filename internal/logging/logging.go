// Package logging wraps zerolog with the printf-style helpers used by the
// command.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Level is a zerolog severity. Only the four below are configurable.
type Level = zerolog.Level

const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
)

// ParseLevel maps a configured level name to a Level, case-insensitively.
// "warning" is accepted for warn; anything else selects LevelInfo.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl < LevelDebug || lvl > LevelError {
		return LevelInfo
	}
	return lvl
}

// Logger writes timestamped console lines. It is safe for concurrent use.
type Logger struct {
	mu sync.Mutex
	zl zerolog.Logger
}

// New returns a logger writing to stderr.
func New(level Level) *Logger {
	return &Logger{
		zl: zerolog.New(console(os.Stderr)).Level(level).With().Timestamp().Logger(),
	}
}

// Discard returns a logger that drops every message.
func Discard() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func console(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000", NoColor: true}
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl = l.zl.Output(console(w))
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl = l.zl.Level(level)
}

// Zerolog returns a copy of the underlying logger for structured fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	zl := l.zl
	return &zl
}

func (l *Logger) Debug(format string, args ...any) { l.logf(LevelDebug, format, args) }
func (l *Logger) Info(format string, args ...any)  { l.logf(LevelInfo, format, args) }
func (l *Logger) Warn(format string, args ...any)  { l.logf(LevelWarn, format, args) }
func (l *Logger) Error(format string, args ...any) { l.logf(LevelError, format, args) }

func (l *Logger) logf(level Level, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.WithLevel(level).Msgf(format, args...)
}
