package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// loudError resolves to a group when logged.
type loudError struct{ code int }

func (e loudError) Error() string { return "loud" }

func (e loudError) LogValue() slog.Value {
	return slog.GroupValue(slog.String("error", "loud"), slog.Int("code", e.code))
}

func TestMake_Defaults(t *testing.T) {
	logger := Make(nil)

	if logger.Level() != DefaultLevel {
		t.Errorf("level = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("format = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller || !logger.pretty || !logger.color {
		t.Errorf("caller=%v pretty=%v color=%v", logger.caller, logger.pretty, logger.color)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.logFunc(Make(&buf, WithLevel(tt.minLevel)), "test message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, want %v", logged, tt.logged)
			}
		})
	}
}

func TestLogger_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false), WithLevel(LevelTrace))
		logger.Trace("test message", slog.String("key", "value"))

		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}

		if got["msg"] != "test message" || got["key"] != "value" || got["level"] != "TRACE" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText), WithPretty(false), WithLevel(LevelInfo))
		logger.Info("test message", slog.String("key", "value"))

		if out := buf.String(); !strings.Contains(out, "key=value") {
			t.Errorf("got %q", out)
		}
	})
}

func TestLogger_Pretty(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   []string
	}{
		{
			name:   "text",
			format: FormatText,
			want:   []string{"level=WARN", "msg=hello", "scope=parse", "err.error=loud", "err.code=7"},
		},
		{
			name:   "json",
			format: FormatJSON,
			want:   []string{"{\n", "  level: WARN,\n", "  msg: hello,\n", "  err.code: 7\n}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf,
				WithFormat(tt.format),
				WithColor(false),
				WithTimeLayout("none"),
			).With(slog.String("scope", "parse"))

			logger.Warn("hello", slog.Any("err", loudError{code: 7}))

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q does not contain %q", out, w)
				}
			}

			if strings.Contains(out, "\x1b[") {
				t.Errorf("color disabled but output has escapes: %q", out)
			}
		})
	}
}

func TestLogger_PrettyColor(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithColor(true), WithTimeLayout("none")).Error("boom")

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestLogger_PrettyError(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithColor(false), WithTimeLayout("none")).
		Error("failed", slog.Any("cause", errors.New("disk full")))

	if !strings.Contains(buf.String(), "cause=disk full") {
		t.Errorf("got %q", buf.String())
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false), WithFormat(FormatJSON)).Warn("x")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller not reported: %s", buf.String())
	}
}

func TestPackage_Caller(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithCaller(true), WithPretty(false), WithFormat(FormatJSON))

	Warn("x")
	WarnContext(DefaultContextProvider(), "y")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.Contains(line, "log_test.go") {
			t.Errorf("caller not reported: %s", line)
		}
	}
}

func TestLogger_NoTime(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		var buf bytes.Buffer

		Make(&buf, WithTimeLayout("none"), WithPretty(pretty), WithColor(false), WithFormat(FormatJSON)).
			Warn("test")

		if strings.Contains(buf.String(), "time") {
			t.Errorf("pretty=%v: expected no time field, got: %s", pretty, buf.String())
		}
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError || wrapped.Level() != LevelDebug {
		t.Errorf("base = %v, wrapped = %v", base.Level(), wrapped.Level())
	}

	var zero Logger
	if zero.Wrap(WithOutput(&buf)).Logger == nil {
		t.Error("wrapping the zero logger should produce a usable logger")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if l.With(slog.String("key", "value")).Logger != nil {
		t.Error("expected nil logger from zero value With")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero logger should report defaults")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false), WithLevel(LevelInfo))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() { logger.Info("concurrent message", slog.Int("id", i)) })
	}

	wg.Wait()

	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 100 {
		t.Errorf("expected 100 log lines, got %d", len(lines))
	}
}

func TestPackage_UsesDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithPretty(false), WithFormat(FormatJSON))
	Config(WithLevel(LevelTrace))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", func(m string, a ...slog.Attr) { TraceContext(DefaultContextProvider(), m, a...) }, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"With", func(m string, a ...slog.Attr) { With(a...).Info(m) }, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			out := buf.String()
			for _, w := range []string{"package message", tt.level, `"key":"value"`} {
				if !strings.Contains(out, w) {
					t.Errorf("output %q does not contain %q", out, w)
				}
			}
		})
	}

	if Default().Level() != LevelTrace {
		t.Errorf("Default().Level() = %v", Default().Level())
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}
