// Package logging builds the engine's *slog.Logger.
//
// Output goes through tint: colored on a terminal, plain text when the
// writer is a file or buffer. Scenes and the loop driver only ever log
// through the logger they are handed.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Level is a log severity as written in engine config and flags.
type Level slog.Level

// Severities accepted in config; anything else parses as LevelInfo.
const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// ParseLevel maps a config value such as "warn" to a Level.
func ParseLevel(value string) Level {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(value))]; ok {
		return l
	}
	return LevelInfo
}

func (l Level) String() string {
	return strings.ToLower(slog.Level(l).String())
}

// NewLogger returns a logger writing to w (stderr when nil) that drops
// records below level.
func NewLogger(w io.Writer, level Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:   slog.Level(level),
		NoColor: !isTerminal(w),
	}))
}

// OrDefault lets constructors accept a nil logger.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NewLogger(os.Stderr, LevelInfo)
	}
	return logger
}

// isTerminal is true only for character devices such as a tty.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
