package note

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/HectorPeeters/noet/lang"
)

func bolded(n Node) Node { return Node{Kind: KindBold, Children: []Node{n}} }

func texts(ss ...string) []Node {
	out := make([]Node, len(ss))
	for i, s := range ss {
		out[i] = Text(s)
	}

	return out
}

func evaluate(t *testing.T, src string, opts ...Option) (*Note, []Node) {
	t.Helper()

	n := New(append([]Option{WithEnviron([]string{})}, opts...)...)

	nodes, err := n.Evaluator().EvaluateString(src)
	if err != nil {
		t.Fatalf("EvaluateString(%q): %v", src, err)
	}

	return n, nodes
}

func TestFullDocument(t *testing.T) {
	src := `[#title This is some document]

It contains a [#b first] paragraph and supports lists.

[#list
| first
| second
| third
]

It also supports tables!

[#table @cols(2) @header
| Name | Score
| Apple | 4
| Banana | 8
| Pear | 9
]`

	n, got := evaluate(t, src)

	if n.Title != "This is some document" {
		t.Errorf("title = %q", n.Title)
	}

	want := []Node{
		Linebreak(),
		Text("It contains a "),
		bolded(Text("first")),
		Text(" paragraph and supports lists."),
		Linebreak(),
		{Kind: KindList, Children: texts("first", "second", "third")},
		Linebreak(),
		Text("It also supports tables!"),
		Linebreak(),
		{
			Kind:     KindTable,
			Cols:     2,
			Header:   true,
			Children: texts("Name", "Score", "Apple", "4", "Banana", "8", "Pear", "9"),
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got:\n%v\nwant:\n%v", got, want)
	}
}

func TestFunctions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Node
	}{
		{
			name: "italic block",
			src:  "[#i some [#b words]]",
			want: []Node{{
				Kind: KindItalic,
				Children: []Node{{
					Kind:     KindBlock,
					Children: []Node{Text("some "), bolded(Text("words"))},
				}},
			}},
		},
		{
			name: "table default cols",
			src:  "[#table a | b]",
			want: []Node{{Kind: KindTable, Cols: 1, Children: texts("a", "b")}},
		},
		{
			name: "code with language",
			src:  "[#code @lang(go) x := 1]",
			want: []Node{{Kind: KindCode, Lang: "go", Text: "x := 1"}},
		},
		{
			name: "link without label",
			src:  "[#link example.com]",
			want: []Node{{Kind: KindLink, Text: "example.com", Children: texts("example.com")}},
		},
		{
			name: "link with label",
			src:  "[#link example.com | [#b here]]",
			want: []Node{{Kind: KindLink, Text: "example.com", Children: []Node{bolded(Text("here"))}}},
		},
		{
			name: "empty list",
			src:  "[#list]",
			want: []Node{{Kind: KindList, Children: []Node{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := evaluate(t, tt.src)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetAndCalc(t *testing.T) {
	n, got := evaluate(t,
		"[#title Report][#set total | 4 * 2][#set label | title + \"!\"]"+
			"[#calc total + 1] [#calc label] [#calc env(\"USER\")]",
		WithEnviron([]string{"USER=ada"}),
	)

	want := []Node{Text("9"), Text(" "), Text("Report!"), Text(" "), Text("ada")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if n.Vars["total"] != 8 {
		t.Errorf("total = %#v", n.Vars["total"])
	}

	meta := n.Meta()
	if meta["title"] != "Report" {
		t.Errorf("meta title = %v", meta["title"])
	}

	if vars, _ := meta["vars"].(map[string]any); len(vars) != 2 {
		t.Errorf("meta vars = %v", meta["vars"])
	}
}

func TestPathList(t *testing.T) {
	sep := string(os.PathListSeparator)

	_, got := evaluate(t, `[#calc paths.prefix(env("PATH"), "/opt/bin")]`,
		WithEnviron([]string{"PATH=/usr/bin" + sep + "/bin"}),
	)

	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}

	if out := got[0].Text; !strings.HasPrefix(out, "/opt/bin"+sep) || !strings.Contains(out, "/usr/bin") {
		t.Errorf("prefix = %q", out)
	}

	if _, err := New(WithEnviron([]string{})).Evaluator().EvaluateString("[#set paths | 1]"); !errors.Is(err, ErrReservedName) {
		t.Errorf("set paths: got %v", err)
	}
}

func TestClone(t *testing.T) {
	n, _ := evaluate(t, "[#title A][#set x | 1]")

	c := n.Clone()
	if _, err := c.Evaluator().EvaluateString("[#title B][#set y | 2]"); err != nil {
		t.Fatal(err)
	}

	if n.Title != "A" || len(n.Vars) != 1 {
		t.Errorf("original changed: %q %v", n.Title, n.Vars)
	}

	if c.Title != "B" || c.Vars["x"] != 1 || c.Vars["y"] != 2 {
		t.Errorf("clone = %q %v", c.Title, c.Vars)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		fn   string
	}{
		{name: "zero cols", src: "[#table @cols(0) a]", want: ErrInvalidTable, fn: "table"},
		{name: "negative cols", src: "[#table @cols(-1) a]", want: lang.ErrInvalidLiteral, fn: "table"},
		{name: "reserved name", src: "[#set title | 1]", want: ErrReservedName, fn: "set"},
		{name: "compile error", src: "[#calc 1 +]", want: ErrExpression, fn: "calc"},
		{name: "undefined variable", src: "[#calc missing]", want: ErrExpression, fn: "calc"},
		{name: "unknown function", src: "[#h1 x]", want: lang.ErrNotRegistered, fn: "h1"},
		{name: "missing argument", src: "[#b]", want: lang.ErrArgumentMissing, fn: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(WithEnviron([]string{}))

			_, err := n.Evaluator().EvaluateString(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}

			var le *lang.Error
			if !errors.As(err, &le) {
				t.Fatalf("%T is not a *lang.Error", err)
			}

			if v, ok := le.Attr("function"); !ok || v.String() != tt.fn {
				t.Errorf("function attr = %v, %v; want %q", v, ok, tt.fn)
			}
		})
	}
}

func TestNode_String(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Text("a"), `text("a")`},
		{Linebreak(), "linebreak"},
		{bolded(Text("x")), `bold(text("x"))`},
		{Node{Kind: KindTable, Cols: 2, Header: true, Children: texts("a", "b")}, `table[cols=2 header](text("a"), text("b"))`},
		{Node{Kind: KindCode, Lang: "go", Text: "x"}, `code[go]("x")`},
		{Node{Kind: KindLink, Text: "u", Children: texts("l")}, `link[u](text("l"))`},
	}

	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
}

func TestBuildEnviron(t *testing.T) {
	got := buildEnviron([]string{"FOO=bar", "EMPTY=", "NOEQUALS", "A=b=c"})

	want := map[string]string{"FOO": "bar", "EMPTY": "", "A": "b=c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUsage(t *testing.T) {
	r := lang.NewRegistry[*Note, Node]()
	New().RegisterFunctions(r)

	for name := range r.Names() {
		if u, ok := Usage(name); !ok || u == "" {
			t.Errorf("no usage for %q", name)
		}
	}

	if _, ok := Usage("missing"); ok {
		t.Error("usage reported for an unregistered function")
	}
}
