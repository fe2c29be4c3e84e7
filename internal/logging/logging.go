// Package logging defines the minimal logging contract used across
// streamlatch and adapters for slog and Watermill loggers, so applications can
// plug in whichever logger they already run.
package logging

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
)

// Fields represents structured logging key/value pairs.
type Fields map[string]any

// Logger is the logging capability injected into emitters and sinks. Drop
// diagnostics are reported through Warn so tests can assert on them
// deterministically.
type Logger interface {
	With(fields Fields) Logger
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
}

// NewSlogLogger wraps a slog.Logger so it satisfies the Logger interface.
func NewSlogLogger(log *slog.Logger) Logger {
	if log == nil {
		panic("streamlatch: slog logger cannot be nil")
	}
	return &slogLogger{inner: log}
}

type slogLogger struct {
	inner *slog.Logger
}

func (l *slogLogger) With(fields Fields) Logger {
	return &slogLogger{inner: l.inner.With(fieldsToArgs(fields)...)}
}

func (l *slogLogger) Debug(msg string, fields Fields) {
	l.inner.Debug(msg, fieldsToArgs(fields)...)
}

func (l *slogLogger) Info(msg string, fields Fields) {
	l.inner.Info(msg, fieldsToArgs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields Fields) {
	l.inner.Warn(msg, fieldsToArgs(fields)...)
}

func (l *slogLogger) Error(msg string, err error, fields Fields) {
	args := fieldsToArgs(fields)
	if err != nil {
		args = append(args, "error", err)
	}
	l.inner.Error(msg, args...)
}

func fieldsToArgs(fields Fields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}

// NewWatermillLogger wraps an existing Watermill LoggerAdapter. Watermill has
// no warn level, so Warn is reported through Info with a level field.
func NewWatermillLogger(logger watermill.LoggerAdapter) Logger {
	if logger == nil {
		panic("streamlatch: watermill logger cannot be nil")
	}
	return &watermillLogger{inner: logger}
}

type watermillLogger struct {
	inner watermill.LoggerAdapter
}

func (l *watermillLogger) With(fields Fields) Logger {
	return &watermillLogger{inner: l.inner.With(watermill.LogFields(fields))}
}

func (l *watermillLogger) Debug(msg string, fields Fields) {
	l.inner.Debug(msg, watermill.LogFields(fields))
}

func (l *watermillLogger) Info(msg string, fields Fields) {
	l.inner.Info(msg, watermill.LogFields(fields))
}

func (l *watermillLogger) Warn(msg string, fields Fields) {
	wf := watermill.LogFields(fields)
	l.inner.Info(msg, wf.Add(watermill.LogFields{"level": "warn"}))
}

func (l *watermillLogger) Error(msg string, err error, fields Fields) {
	l.inner.Error(msg, err, watermill.LogFields(fields))
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) With(Fields) Logger          { return nopLogger{} }
func (nopLogger) Debug(string, Fields)        {}
func (nopLogger) Info(string, Fields)         {}
func (nopLogger) Warn(string, Fields)         {}
func (nopLogger) Error(string, error, Fields) {}
