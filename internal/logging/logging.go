// Package logging builds the structured loggers used across testify.
//
// Every logger is a plain *slog.Logger. Components receive one explicitly and
// tag their records with a subsystem attribute, so output can be filtered per
// pipeline:
//
//	logger := logging.New(logging.LevelInfo, os.Stderr)
//	log := logging.For(logger, "catalog")
//	log.Info("catalog written", "path", path)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogLevel defines the minimum severity that is emitted.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel converts LogLevel to slog.Level.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a level name such as "debug" or "WARNING".
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "", "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR", "CRITICAL":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q (valid: DEBUG, INFO, WARN, ERROR)", s)
	}
}

// New returns a text logger writing to w at the given level.
func New(level LogLevel, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level.SlogLevel(),
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// For scopes logger to a subsystem. A nil logger yields Discard().
func For(logger *slog.Logger, subsystem string) *slog.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.With("subsystem", subsystem)
}
