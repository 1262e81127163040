package cmd

import (
	"context"
	"log/slog"

	"github.com/fatih/color"

	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/log"
)

// Tree prints the parse tree of a document.
type Tree struct {
	Files    []string `arg:"" help:"Source files or '-' for stdin" optional:"" type:"path"`
	Format   string   `       help:"Output format"                default:"text" enum:"text,json,yaml,msgpack" short:"o"`
	Indent   int      `       help:"Indentation width"            default:"2"`
	MaxDepth int      `       help:"Maximum call nesting depth"   default:"${maxDepth}"`

	stdio
}

var treePalette = map[string]*color.Color{
	"kind": color.New(color.FgBlue),
	"name": color.New(color.FgYellow, color.Bold),
	"attr": color.New(color.FgMagenta),
	"text": color.New(color.FgGreen),
}

// paint is a [lang.Painter] using the terminal palette.
func paint(class, s string) string {
	if c, ok := treePalette[class]; ok {
		return c.Sprint(s)
	}

	return s
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) error {
	src, err := readSource(t.Files, t.stdin())
	if err != nil {
		return err
	}

	elements, err := lang.ParseString(src,
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(t.MaxDepth),
	)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "parsed",
		slog.Int("elements", len(elements)),
		slog.String("format", t.Format))

	w := t.stdout()

	switch t.Format {
	case "text":
		return lang.FormatTree(w, elements, t.Indent, paint)
	case "json":
		return lang.FormatJSON(ctx, w, elements, t.Indent)
	case "yaml":
		return lang.FormatYAML(ctx, w, elements, t.Indent)
	case "msgpack":
		return lang.FormatMsgpack(ctx, w, elements)
	default:
		return ErrFormat.With(slog.String("format", t.Format))
	}
}
