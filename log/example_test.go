package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/HectorPeeters/noet/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithColor(false),
		log.WithTimeLayout("none"),
	)

	logger.Debug("parsed element", slog.String("kind", "function"), slog.Int("start", 4))

	// Output:
	// level=DEBUG msg=parsed element kind=function start=4
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	logger.Warn("evaluation failed", slog.String("function", "table"))

	// Output:
	// {"level":"WARN","msg":"evaluation failed","function":"table"}
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithColor(false), log.WithTimeLayout("none")).
		With(slog.String("source", "notes.noet"))

	logger.Error("unexpected token", slog.Int("start", 12))

	// Output:
	// level=ERROR msg=unexpected token source=notes.noet start=12
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout)

	logger.InfoContext(ctx, "processing request with context")
	logger.DebugContext(ctx, "request details", slog.String("method", "POST"))
}
