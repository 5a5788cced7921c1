// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter wraps a zerolog.Logger to implement the Logger interface
type ZerologAdapter struct {
	logger zerolog.Logger
}

var _ ContextLogger = (*ZerologAdapter)(nil)

// ZerologConfig configures the zerolog adapter
type ZerologConfig struct {
	// Writer receives the output, os.Stderr when nil
	Writer io.Writer

	// Level is the minimum log level to output
	Level Level

	// Console renders human-friendly colored lines instead of JSON
	Console bool
}

// NewZerologAdapter creates a new zerolog adapter
func NewZerologAdapter(config *ZerologConfig) *ZerologAdapter {
	if config == nil {
		config = &ZerologConfig{Level: LevelInfo}
	}

	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	if config.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(w).
		Level(levelToZerologLevel(config.Level)).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: zl}
}

// NewZerologAdapterFrom wraps an existing zerolog.Logger.
func NewZerologAdapterFrom(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: zl}
}

// Debug logs a debug message
func (l *ZerologAdapter) Debug(msg string, fields ...Field) {
	emit(l.logger.Debug(), msg, fields)
}

// Info logs an informational message
func (l *ZerologAdapter) Info(msg string, fields ...Field) {
	emit(l.logger.Info(), msg, fields)
}

// Warn logs a warning message
func (l *ZerologAdapter) Warn(msg string, fields ...Field) {
	emit(l.logger.Warn(), msg, fields)
}

// Error logs an error message
func (l *ZerologAdapter) Error(msg string, fields ...Field) {
	emit(l.logger.Error(), msg, fields)
}

// DebugContext logs a debug message with correlation ID from context
func (l *ZerologAdapter) DebugContext(ctx context.Context, msg string, fields ...Field) {
	emit(l.logger.Debug(), msg, withCorrelationID(ctx, fields))
}

// InfoContext logs an informational message with correlation ID from context
func (l *ZerologAdapter) InfoContext(ctx context.Context, msg string, fields ...Field) {
	emit(l.logger.Info(), msg, withCorrelationID(ctx, fields))
}

// WarnContext logs a warning message with correlation ID from context
func (l *ZerologAdapter) WarnContext(ctx context.Context, msg string, fields ...Field) {
	emit(l.logger.Warn(), msg, withCorrelationID(ctx, fields))
}

// ErrorContext logs an error message with correlation ID from context
func (l *ZerologAdapter) ErrorContext(ctx context.Context, msg string, fields ...Field) {
	emit(l.logger.Error(), msg, withCorrelationID(ctx, fields))
}

// With creates a child logger with the given fields
func (l *ZerologAdapter) With(fields ...Field) Logger {
	zctx := l.logger.With()
	for _, f := range fields {
		zctx = zctx.Interface(f.Key, fieldValue(f))
	}
	return &ZerologAdapter{logger: zctx.Logger()}
}

// WithError creates a child logger with an error field
func (l *ZerologAdapter) WithError(err error) Logger {
	return &ZerologAdapter{logger: l.logger.With().Err(err).Logger()}
}

// emit adds fields to a zerolog event and sends it. A nil event means the
// level is disabled.
func emit(e *zerolog.Event, msg string, fields []Field) {
	if e == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		case []int:
			e = e.Ints(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}

func fieldValue(f Field) interface{} {
	if err, ok := f.Value.(error); ok {
		return err.Error()
	}
	return f.Value
}

// levelToZerologLevel converts our Level to zerolog.Level
func levelToZerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
