// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Time formatting, caller information, level, output format and pretty
// printing are applied at logger creation time using functional options.
// The zero [Logger] discards all messages.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Debug("parsed element", slog.String("kind", "function"))
//	logger.Error("evaluation failed", slog.Any("error", err))
//
// Values implementing [slog.LogValuer] are resolved before they are
// written, so structured errors log their span and attributes.
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant. The
// context-unaware variants use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and [LevelError].
// Trace is below Debug and is used for per-token and per-element output.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. With [WithPretty] enabled (the
// default) both are rendered by a human-oriented handler that is colorized
// unless disabled with [WithColor].
//
// # Package Logger
//
// The package-level functions ([Info], [Error], ...) write through a
// default logger on standard error, reconfigured with [Config].
package log
