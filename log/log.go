// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log defines the logging facade used by the codec. Callers that want
// to observe codec decisions implement [Logger] and pass it via
// ber.WithLogger or attach it to a context with [WithLogger]. Loggers that
// already implement Logger include go.uber.org/zap.SugaredLogger and
// github.com/sirupsen/logrus.Logger.
package log

import "context"

type contextKey int

const loggerKey contextKey = iota

// Discard is a Logger that drops all messages.
var Discard Logger = discardLogger{}

// Logger is a leveled logger.
type Logger interface {
	// Debug logs a debug level message.
	Debug(args ...any)

	// Debugf logs a debug level message with format.
	Debugf(format string, args ...any)

	// Info logs an info level message.
	Info(args ...any)

	// Infof logs an info level message with format.
	Infof(format string, args ...any)

	// Warn logs a warn level message.
	Warn(args ...any)

	// Warnf logs a warn level message with format.
	Warnf(format string, args ...any)

	// Error logs an error level message.
	Error(args ...any)

	// Errorf logs an error level message with format.
	Errorf(format string, args ...any)
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the Logger of ctx, or [Discard] if there is none.
func GetLogger(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return Discard
}

type discardLogger struct{}

func (discardLogger) Debug(...any)          {}
func (discardLogger) Debugf(string, ...any) {}
func (discardLogger) Info(...any)           {}
func (discardLogger) Infof(string, ...any)  {}
func (discardLogger) Warn(...any)           {}
func (discardLogger) Warnf(string, ...any)  {}
func (discardLogger) Error(...any)          {}
func (discardLogger) Errorf(string, ...any) {}
