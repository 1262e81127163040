package note

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a [Node].
type Kind int

const (
	KindText      Kind = iota // text
	KindLinebreak             // linebreak
	KindBlock                 // block
	KindBold                  // bold
	KindItalic                // italic
	KindList                  // list
	KindTable                 // table
	KindCode                  // code
	KindLink                  // link
)

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Node is the value a note document evaluates to.
type Node struct {
	Kind     Kind   `json:"kind"               yaml:"kind"`
	Text     string `json:"text,omitempty"     yaml:"text,omitempty"`
	Lang     string `json:"lang,omitempty"     yaml:"lang,omitempty"`
	Cols     uint32 `json:"cols,omitempty"     yaml:"cols,omitempty"`
	Header   bool   `json:"header,omitempty"   yaml:"header,omitempty"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Text returns a text node.
func Text(s string) Node { return Node{Kind: KindText, Text: s} }

// Linebreak returns a paragraph break node.
func Linebreak() Node { return Node{Kind: KindLinebreak} }

// FromText implements lang.Value.
func (Node) FromText(s string) (Node, bool) { return Text(s), true }

// FromBlock implements lang.Value.
func (Node) FromBlock(children []Node) (Node, bool) {
	return Node{Kind: KindBlock, Children: children}, true
}

// Linebreak implements lang.Value.
func (Node) Linebreak() (Node, bool) { return Linebreak(), true }

// String returns a compact debug representation such as
// bold(text("first")).
func (n Node) String() string {
	var sb strings.Builder

	n.write(&sb)

	return sb.String()
}

func (n Node) write(sb *strings.Builder) {
	sb.WriteString(n.Kind.String())

	switch n.Kind {
	case KindText:
		sb.WriteString("(" + strconv.Quote(n.Text) + ")")

		return

	case KindLinebreak:
		return

	case KindTable:
		sb.WriteString("[cols=" + strconv.FormatUint(uint64(n.Cols), 10))

		if n.Header {
			sb.WriteString(" header")
		}

		sb.WriteString("]")

	case KindCode:
		if n.Lang != "" {
			sb.WriteString("[" + n.Lang + "]")
		}

		sb.WriteString("(" + strconv.Quote(n.Text) + ")")

		return

	case KindLink:
		sb.WriteString("[" + n.Text + "]")
	}

	sb.WriteString("(")

	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}

		c.write(sb)
	}

	sb.WriteString(")")
}
