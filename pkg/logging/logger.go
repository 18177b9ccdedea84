// Package logging provides the small structured logger used by the notepad
// command. It is a thin layer over log/slog so callers can depend on an
// interface and tests can capture output.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger interface for dependency injection and testing
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// Format represents the output format
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Config holds logger configuration
type Config struct {
	Level   slog.Level
	Format  Format
	Output  io.Writer // Defaults to os.Stderr
	AddTime bool
}

type slogLogger struct {
	logger *slog.Logger
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config Config) Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	if !config.AddTime {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		}
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}
	return &slogLogger{logger: slog.New(handler)}
}

// NewDefaultLogger logs warnings and errors to w without timestamps.
func NewDefaultLogger(w io.Writer) Logger {
	return NewLogger(Config{Level: slog.LevelWarn, Output: w})
}

// NewVerboseLogger logs everything down to debug level to w.
func NewVerboseLogger(w io.Writer) Logger {
	return NewLogger(Config{Level: slog.LevelDebug, Output: w})
}

// NewQuietLogger only logs errors to w.
func NewQuietLogger(w io.Writer) Logger {
	return NewLogger(Config{Level: slog.LevelError, Output: w})
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a logger with additional attributes
func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}
