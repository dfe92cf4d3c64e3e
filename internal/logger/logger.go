// Package logger provides the structured logger used across fieldpaths.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type (
	// Level is a log level name as it appears in configuration.
	Level string

	// Logger defines the interface for structured logging.
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	// charmLogger implements Logger on top of charmbracelet/log.
	charmLogger struct {
		l *charmlog.Logger
	}
)

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, error) {
	switch lvl := Level(strings.ToLower(s)); lvl {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return lvl, nil
	default:
		return "", fmt.Errorf("invalid log level %q", s)
	}
}

func (lvl Level) charm() charmlog.Level {
	switch lvl {
	case DebugLevel:
		return charmlog.DebugLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Config controls logger construction.
type Config struct {
	Level      Level
	Output     io.Writer
	JSON       bool
	TimeFormat string
}

// DefaultConfig logs info and above to stderr as text.
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

// New builds a Logger from cfg; a nil cfg means DefaultConfig.
func New(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	l := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: cfg.TimeFormat != "",
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.charm(),
	})
	if cfg.JSON {
		l.SetFormatter(charmlog.JSONFormatter)
	} else {
		l.SetFormatter(charmlog.TextFormatter)
	}

	return &charmLogger{l: l}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return New(&Config{Level: ErrorLevel, Output: io.Discard})
}

func (c *charmLogger) Debug(msg string, keyvals ...any) {
	c.l.Debug(msg, keyvals...)
}

func (c *charmLogger) Info(msg string, keyvals ...any) {
	c.l.Info(msg, keyvals...)
}

func (c *charmLogger) Warn(msg string, keyvals ...any) {
	c.l.Warn(msg, keyvals...)
}

func (c *charmLogger) Error(msg string, keyvals ...any) {
	c.l.Error(msg, keyvals...)
}

func (c *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}
