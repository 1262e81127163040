package note

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/HectorPeeters/noet/lang"
)

type (
	colsAttr   struct{ lang.Attr[uint32] }
	headerFlag struct{ lang.Flag }
	langAttr   struct{ lang.Attr[string] }
)

func (colsAttr) AttrKey() string   { return "cols" }
func (headerFlag) AttrKey() string { return "header" }
func (langAttr) AttrKey() string   { return "lang" }

func title(n *Note, _ lang.Attrs, s string) (lang.Unit, error) {
	n.Title = s

	return lang.Unit{}, nil
}

func bold(_ *Note, _ lang.Attrs, inner Node) (Node, error) {
	return Node{Kind: KindBold, Children: []Node{inner}}, nil
}

func italic(_ *Note, _ lang.Attrs, inner Node) (Node, error) {
	return Node{Kind: KindItalic, Children: []Node{inner}}, nil
}

func list(_ *Note, _ lang.Attrs, items lang.Variadic[Node]) (Node, error) {
	return Node{Kind: KindList, Children: items}, nil
}

// table lays its cells out row by row in cols columns. With @header the
// first row is a header row.
func table(
	_ *Note, _ lang.Attrs, cols colsAttr, header headerFlag, cells lang.Variadic[Node],
) (Node, error) {
	n := Node{Kind: KindTable, Cols: 1, Header: header.Set, Children: cells}

	if v, ok := cols.Get(); ok {
		if v == 0 {
			return Node{}, ErrInvalidTable.With(slog.String("reason", "cols must be positive"))
		}

		n.Cols = v
	}

	return n, nil
}

func code(_ *Note, _ lang.Attrs, l langAttr, body string) (Node, error) {
	return Node{Kind: KindCode, Lang: l.Value, Text: body}, nil
}

// link uses its target as label when no label is given.
func link(_ *Note, _ lang.Attrs, href string, label lang.Optional[Node]) (Node, error) {
	return Node{
		Kind:     KindLink,
		Text:     href,
		Children: []Node{label.Or(Text(href))},
	}, nil
}

func set(n *Note, _ lang.Attrs, name, source string) (lang.Unit, error) {
	if slices.Contains(reserved, name) {
		return lang.Unit{}, ErrReservedName.With(slog.String("name", name))
	}

	v, err := n.eval(source)
	if err != nil {
		return lang.Unit{}, err
	}

	n.Vars[name] = v

	return lang.Unit{}, nil
}

func calc(n *Note, _ lang.Attrs, source string) (Node, error) {
	v, err := n.eval(source)
	if err != nil {
		return Node{}, err
	}

	return Text(fmt.Sprint(v)), nil
}

var usage = map[string]string{
	"title": "[#title text]",
	"b":     "[#b content]",
	"i":     "[#i content]",
	"list":  "[#list | item | item ...]",
	"table": "[#table @cols(N) @header | cell | cell ...]",
	"code":  "[#code @lang(name) source]",
	"link":  "[#link target | label]",
	"set":   "[#set name | expression]",
	"calc":  "[#calc expression]",
}

// Usage returns a one-line synopsis of the note function name.
func Usage(name string) (string, bool) {
	u, ok := usage[name]

	return u, ok
}

// Attributes returns the attribute keys understood by note functions.
func Attributes() []string { return []string{"cols", "header", "lang"} }
