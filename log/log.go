package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger provides a concurrency-safe simplified logging interface.
//
// The zero Logger discards everything, so components may hold one without
// checking whether logging was configured.
type Logger struct {
	*slog.Logger
	config
}

// Make creates a new [Logger] that writes to the specified writer.
// The default configuration is [DefaultFormat], [DefaultLevel],
// [DefaultTimeLayout], and caller info disabled.
//
// Optional configuration can be applied using functional options like
// [WithFormat], [WithLevel], [WithTimeLayout], and [WithCaller].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}
}

// Wrap returns a new [Logger] using the current configuration as the base,
// overridden by opts.
//
// Attributes added with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.mutex == nil {
		return Make(nil, opts...)
	}

	// The clone gets its own mutex, so only reading l needs the lock.
	l.mutex.RLock()
	cfg := l.clone(opts...)
	l.mutex.RUnlock()

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}
}

// With returns a new [Logger] that includes the given attributes in each log
// message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	l.mutex.RLock()
	cfg := l.clone()
	l.mutex.RUnlock()

	return Logger{
		config: cfg,
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
	}
}

// Level returns the current minimum log level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.level
}

// Format returns the current log output format.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.format
}

// TraceContext logs msg at Trace level with ctx passed to the handler.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.output(ctx, LevelTrace, msg, attrs...)
}

// DebugContext logs msg at Debug level with ctx passed to the handler.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.output(ctx, LevelDebug, msg, attrs...)
}

// InfoContext logs msg at Info level with ctx passed to the handler.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.output(ctx, LevelInfo, msg, attrs...)
}

// WarnContext logs msg at Warn level with ctx passed to the handler.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.output(ctx, LevelWarn, msg, attrs...)
}

// ErrorContext logs msg at Error level with ctx passed to the handler.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.output(ctx, LevelError, msg, attrs...)
}

// Trace logs msg at Trace level. Like the other methods without a context
// parameter, it uses [DefaultContextProvider] for the record context.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.output(DefaultContextProvider(), LevelTrace, msg, attrs...)
}

// Debug logs msg at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.output(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

// Info logs msg at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.output(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

// Warn logs msg at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.output(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

// Error logs msg at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.output(DefaultContextProvider(), LevelError, msg, attrs...)
}

// output writes one record. Every exported logging function calls it
// directly, so the caller is always two frames up.
func (l Logger) output(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.Logger == nil {
		return
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	// runtime.Callers, output and the exported method.
	var pcs [1]uintptr

	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
