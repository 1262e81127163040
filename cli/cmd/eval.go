package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/log"
	"github.com/HectorPeeters/noet/note"
)

// Eval evaluates a document with the note functions.
type Eval struct {
	Files    []string `arg:"" help:"Source files or '-' for stdin"            optional:"" type:"path"`
	Format   string   `       help:"Output format"                            default:"text" enum:"text,json,yaml" short:"o"`
	Indent   int      `       help:"Indentation width of json and yaml output" default:"2"`
	Strict   bool     `       help:"Reject surplus function arguments"`
	MaxDepth int      `       help:"Maximum call nesting depth"               default:"${maxDepth}"`

	stdio
	environ []string
}

// evalResult is the structured output of the eval command.
type evalResult struct {
	Meta  map[string]any `json:"meta"  yaml:"meta"`
	Nodes []note.Node    `json:"nodes" yaml:"nodes"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	src, err := readSource(e.Files, e.stdin())
	if err != nil {
		return err
	}

	logger := log.Default()

	n := note.New(note.WithLogger(logger), note.WithEnviron(e.environ))
	ev := n.Evaluator(
		lang.WithLogger(logger),
		lang.WithMaxDepth(e.MaxDepth),
		lang.WithStrictArity(e.Strict),
	)

	nodes, err := ev.EvaluateString(src)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "evaluated",
		slog.Int("nodes", len(nodes)),
		slog.String("title", n.Title),
		slog.Int("vars", len(n.Vars)))

	res := evalResult{Meta: n.Meta(), Nodes: nodes}
	if res.Nodes == nil {
		res.Nodes = []note.Node{}
	}

	w := e.stdout()

	switch e.Format {
	case "text":
		return writeText(w, n, nodes)

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", e.Indent))

		return enc.Encode(res)

	case "yaml":
		enc := yaml.NewEncoder(w, yaml.Indent(max(e.Indent, 1)))
		defer enc.Close()

		return enc.EncodeContext(ctx, res)

	default:
		return ErrFormat.With(slog.String("format", e.Format))
	}
}

// writeText prints the metadata followed by one node per line.
func writeText(w io.Writer, n *note.Note, nodes []note.Node) error {
	var sb strings.Builder

	if n.Title != "" {
		fmt.Fprintf(&sb, "title: %s\n", n.Title)
	}

	for _, name := range slices.Sorted(maps.Keys(n.Vars)) {
		fmt.Fprintf(&sb, "%s = %v\n", name, n.Vars[name])
	}

	if sb.Len() > 0 && len(nodes) > 0 {
		sb.WriteString("\n")
	}

	for _, node := range nodes {
		sb.WriteString(node.String())
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
