package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Painter decorates a fragment of formatted output. The class is one of
// "kind", "name", "attr" or "text".
type Painter func(class, s string) string

func plain(_, s string) string { return s }

// FormatTree writes an indented, human-readable dump of elements.
func FormatTree(w io.Writer, elements []Element, indent int, paint Painter) error {
	if paint == nil {
		paint = plain
	}

	if indent <= 0 {
		indent = 2
	}

	for _, el := range elements {
		if err := formatElement(w, el, indent, 0, paint); err != nil {
			return err
		}
	}

	return nil
}

func formatElement(w io.Writer, el Element, indent, depth int, paint Painter) error {
	pad := strings.Repeat(" ", depth*indent)

	switch e := el.(type) {
	case Text:
		_, err := fmt.Fprintf(w, "%s%s %s\n", pad,
			paint("kind", "text"), paint("text", strconv.Quote(e.Value)))

		return err

	case HardLinebreak:
		_, err := fmt.Fprintf(w, "%s%s\n", pad, paint("kind", "linebreak"))

		return err

	case Function:
		var sb strings.Builder

		sb.WriteString(pad)
		sb.WriteString(paint("kind", "function"))
		sb.WriteString(" ")
		sb.WriteString(paint("name", e.Name))

		for _, a := range e.Attributes {
			sb.WriteString(" ")
			sb.WriteString(paint("attr", a.String()))
		}

		sb.WriteString("\n")

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}

		for _, arg := range e.Arguments {
			if err := formatElement(w, arg, indent, depth+1, paint); err != nil {
				return err
			}
		}

		return nil

	case Block:
		if _, err := fmt.Fprintf(w, "%s%s\n", pad, paint("kind", "block")); err != nil {
			return err
		}

		for _, child := range e.Elements {
			if err := formatElement(w, child, indent, depth+1, paint); err != nil {
				return err
			}
		}

		return nil

	default:
		_, err := fmt.Fprintf(w, "%s<unknown>\n", pad)

		return err
	}
}

// FormatJSON writes elements as JSON to the writer.
func FormatJSON(_ context.Context, w io.Writer, elements []Element, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(TreeNative(elements), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(TreeNative(elements))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes elements as YAML to the writer.
func FormatYAML(ctx context.Context, w io.Writer, elements []Element, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, TreeNative(elements), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// FormatMsgpack writes elements as MessagePack to the writer.
func FormatMsgpack(_ context.Context, w io.Writer, elements []Element) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)

	return enc.Encode(TreeNative(elements))
}
