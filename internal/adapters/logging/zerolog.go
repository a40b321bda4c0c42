// Package logging provides implementations of the ports.Logger interface.
// It includes a ZerologLogger for structured console output and a NopLogger
// for disabled logging.
package logging

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/rigup/internal/ports"
)

// ZerologLogger implements ports.Logger on top of rs/zerolog.
type ZerologLogger struct {
	log   zerolog.Logger
	level ports.Level
}

// ZerologOption configures the logger.
type ZerologOption func(*options)

type options struct {
	out     io.Writer
	level   ports.Level
	console bool
}

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) ZerologOption {
	return func(o *options) {
		o.out = w
	}
}

// WithLevel sets the minimum log level (default: Info).
func WithLevel(level ports.Level) ZerologOption {
	return func(o *options) {
		o.level = level
	}
}

// WithConsoleFormat enables human-readable console output instead of JSON.
func WithConsoleFormat(enabled bool) ZerologOption {
	return func(o *options) {
		o.console = enabled
	}
}

// NewZerologLogger creates a new zerolog-backed logger.
func NewZerologLogger(opts ...ZerologOption) *ZerologLogger {
	o := &options{
		out:   os.Stderr,
		level: ports.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	out := o.out
	if o.console {
		out = zerolog.ConsoleWriter{Out: o.out, TimeFormat: "15:04:05"}
	}

	log := zerolog.New(out).Level(toZerologLevel(o.level)).With().Timestamp().Logger()
	return &ZerologLogger{log: log, level: o.level}
}

// Debug logs a debug message.
func (l *ZerologLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.emit(l.log.Debug(), msg, fields)
}

// Info logs an informational message.
func (l *ZerologLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.emit(l.log.Info(), msg, fields)
}

// Warn logs a warning message.
func (l *ZerologLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.emit(l.log.Warn(), msg, fields)
}

// Error logs an error message.
func (l *ZerologLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.emit(l.log.Error(), msg, fields)
}

// With returns a new logger with additional fields.
func (l *ZerologLogger) With(fields ...ports.Field) ports.Logger {
	ctx := l.log.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{log: ctx.Logger(), level: l.level}
}

// Level returns the minimum log level.
func (l *ZerologLogger) Level() ports.Level {
	return l.level
}

func (l *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []ports.Field) {
	for _, f := range fields {
		ev = ev.Interface(f.Key, f.Value)
	}
	ev.Msg(msg)
}

func toZerologLevel(level ports.Level) zerolog.Level {
	switch level {
	case ports.LevelDebug:
		return zerolog.DebugLevel
	case ports.LevelWarn:
		return zerolog.WarnLevel
	case ports.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Ensure ZerologLogger implements Logger.
var _ ports.Logger = (*ZerologLogger)(nil)
