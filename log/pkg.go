package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the context used by context-unaware
// logging functions and methods.
var DefaultContextProvider = context.TODO

// defaultLog is the logger used by the package-level functions.
var defaultLog = Make(os.Stderr)

// Default returns the package default logger.
func Default() Logger { return defaultLog }

// Config updates the default logger with the given options.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// TraceContext logs msg at Trace level through the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.output(ctx, LevelTrace, msg, attrs...)
}

// DebugContext logs msg at Debug level through the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.output(ctx, LevelDebug, msg, attrs...)
}

// Debug logs msg at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.output(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

// InfoContext logs msg at Info level through the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.output(ctx, LevelInfo, msg, attrs...)
}

// Info logs msg at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.output(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

// WarnContext logs msg at Warn level through the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.output(ctx, LevelWarn, msg, attrs...)
}

// Warn logs msg at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.output(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

// ErrorContext logs msg at Error level through the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.output(ctx, LevelError, msg, attrs...)
}

// Error logs msg at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.output(DefaultContextProvider(), LevelError, msg, attrs...)
}

// With returns a copy of the default logger that includes attrs in each
// message.
func With(attrs ...slog.Attr) Logger {
	return defaultLog.With(attrs...)
}
