package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// palette holds the colors used by the pretty handler.
type palette struct {
	key, str, num, dur, time, yes, no, null *color.Color

	trace, debug, info, warn, error *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		key:   color.New(color.FgHiBlack),
		str:   color.New(color.FgCyan),
		num:   color.New(color.FgYellow),
		dur:   color.New(color.FgMagenta),
		time:  color.New(color.FgBlue),
		yes:   color.New(color.FgGreen),
		no:    color.New(color.FgRed),
		null:  color.New(color.FgHiBlack),
		trace: color.New(color.FgHiBlack),
		debug: color.New(color.FgBlue),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow, color.Bold),
		error: color.New(color.FgRed, color.Bold),
	}

	for _, c := range []*color.Color{
		p.key, p.str, p.num, p.dur, p.time, p.yes, p.no, p.null,
		p.trace, p.debug, p.info, p.warn, p.error,
	} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p palette) level(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.error
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes human-oriented log records, either as key=value
// pairs on one line or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	format Format
	colors palette
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	group  string
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	format Format,
	colors palette,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		format: format,
		colors: colors,
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.group = h.prefix(name)

	return &c
}

func (h *prettyHandler) prefix(key string) string {
	if h.group == "" {
		return key
	}

	return h.group + "." + key
}

func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix(a.Key), Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []slog.Attr

	if t := h.replace(slog.Time(slog.TimeKey, r.Time)); !r.Time.IsZero() && t.Key != "" {
		fields = append(fields, t)
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields, slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, slog.Attr{Key: h.prefix(a.Key), Value: a.Value})

		return true
	})

	buf := new(bytes.Buffer)

	if h.format == FormatJSON {
		h.writeObject(buf, fields)
	} else {
		h.writeLine(buf, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

// flatten resolves LogValuers and expands groups into dotted keys.
func flatten(key string, v slog.Value, out []slog.Attr) []slog.Attr {
	v = v.Resolve()

	if v.Kind() != slog.KindGroup {
		return append(out, slog.Attr{Key: key, Value: v})
	}

	for _, a := range v.Group() {
		k := a.Key
		if key != "" {
			k = key + "." + k
		}

		out = flatten(k, a.Value, out)
	}

	return out
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []slog.Attr) {
	var flat []slog.Attr
	for _, f := range fields {
		flat = flatten(f.Key, f.Value, flat)
	}

	for i, a := range flat {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.colors.key.Sprint(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.value(a.Value))
	}
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []slog.Attr) {
	var flat []slog.Attr
	for _, f := range fields {
		flat = flatten(f.Key, f.Value, flat)
	}

	buf.WriteString("{\n")

	for i, a := range flat {
		buf.WriteString("  ")
		buf.WriteString(h.colors.key.Sprint(a.Key))
		buf.WriteString(": ")
		buf.WriteString(h.value(a.Value))

		if i < len(flat)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}")
}

func (h *prettyHandler) value(v slog.Value) string {
	c := h.colors

	switch v.Kind() {
	case slog.KindString:
		return c.str.Sprint(v.String())

	case slog.KindInt64:
		return c.num.Sprint(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return c.num.Sprint(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return c.num.Sprint(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return c.yes.Sprint("true")
		}

		return c.no.Sprint("false")

	case slog.KindDuration:
		return c.dur.Sprint(v.Duration().String())

	case slog.KindTime:
		return c.time.Sprint(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch a := v.Any().(type) {
		case slog.Level:
			return c.level(a).Sprint(strings.ToUpper(Level(a).String()))
		case nil:
			return c.null.Sprint("null")
		case error:
			return c.no.Sprint(a.Error())
		default:
			return c.str.Sprint(fmt.Sprint(a))
		}

	default:
		return c.str.Sprint(v.String())
	}
}
