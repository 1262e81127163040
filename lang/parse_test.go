package lang

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

// strip removes spans so trees can be compared structurally.
func strip(el Element) Element {
	switch e := el.(type) {
	case Text:
		return Text{Value: e.Value}
	case HardLinebreak:
		return HardLinebreak{}
	case Function:
		f := Function{Name: e.Name, Attributes: e.Attributes}
		for _, a := range e.Arguments {
			f.Arguments = append(f.Arguments, strip(a))
		}

		return f
	case Block:
		var b Block
		for _, c := range e.Elements {
			b.Elements = append(b.Elements, strip(c))
		}

		return b
	}

	return el
}

func stripAll(els []Element) []Element {
	var out []Element
	for _, el := range els {
		out = append(out, strip(el))
	}

	return out
}

func text(s string) Text { return Text{Value: s} }

func fn(name string, attrs []Attribute, args ...Element) Function {
	return Function{Name: name, Attributes: attrs, Arguments: args}
}

func TestParseString_Elements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Element
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  nil,
		},
		{
			name:  "single line text",
			input: "This is some text.",
			want:  []Element{text("This is some text.")},
		},
		{
			name:  "trimmed text",
			input: "  \n padded \n ",
			want:  []Element{text("padded")},
		},
		{
			name:  "multi line text",
			input: "This is some text\nwhich continues on another line.",
			want:  []Element{text("This is some text\nwhich continues on another line.")},
		},
		{
			name:  "paragraph split",
			input: "A\n\nB",
			want:  []Element{text("A"), HardLinebreak{}, text("B")},
		},
		{
			name:  "trailing paragraph break is trimmed",
			input: "This is some text.\n\n",
			want:  []Element{text("This is some text.")},
		},
		{
			name:  "balanced parens",
			input: "(simple)",
			want:  []Element{text("(simple)")},
		},
		{
			name:  "unbalanced open paren at end",
			input: "a ( b",
			want:  []Element{text("a ( b")},
		},
		{
			name:  "function without arguments",
			input: "[#test]",
			want:  []Element{fn("test", nil)},
		},
		{
			name:  "function with one argument",
			input: "[#test test this is an argument]",
			want:  []Element{fn("test", nil, text("test this is an argument"))},
		},
		{
			name:  "function with attributes and two arguments",
			input: "[#test @lang(rust) first | second]",
			want: []Element{
				fn("test", []Attribute{NewValue("lang", "rust")}, text("first"), text("second")),
			},
		},
		{
			name:  "flag attribute",
			input: "[#test @some-attribute]",
			want:  []Element{fn("test", []Attribute{NewFlag("some-attribute")})},
		},
		{
			name:  "mixed attributes",
			input: "[#table @cols(2) @header a]",
			want: []Element{
				fn("table", []Attribute{NewValue("cols", "2"), NewFlag("header")}, text("a")),
			},
		},
		{
			name:  "attribute value keeps whitespace and nested parens",
			input: "[#t @v( a (b) ) x]",
			want:  []Element{fn("t", []Attribute{NewValue("v", " a (b) ")}, text("x"))},
		},
		{
			name:  "empty attribute value",
			input: "[#t @v()]",
			want:  []Element{fn("t", []Attribute{NewValue("v", "")})},
		},
		{
			name:  "argument trimming",
			input: "[#test   first   |  second ]",
			want:  []Element{fn("test", nil, text("first"), text("second"))},
		},
		{
			name:  "arguments on new lines",
			input: "[#test\ntest this is an argument\n|\ntwo arguments]",
			want: []Element{
				fn("test", nil, text("test this is an argument"), text("two arguments")),
			},
		},
		{
			name:  "leading separator",
			input: "[#test\n| test this is an argument\n| two arguments\n]",
			want: []Element{
				fn("test", nil, text("test this is an argument"), text("two arguments")),
			},
		},
		{
			name:  "empty groups dropped",
			input: "[#test | | a |  | b |]",
			want:  []Element{fn("test", nil, text("a"), text("b"))},
		},
		{
			name:  "function in text",
			input: "This is some text with a [#b bold] word.",
			want: []Element{
				text("This is some text with a "),
				fn("b", nil, text("bold")),
				text(" word."),
			},
		},
		{
			name:  "adjacent functions",
			input: "[#test one][#test2 two]",
			want:  []Element{fn("test", nil, text("one")), fn("test2", nil, text("two"))},
		},
		{
			name:  "functions separated by space",
			input: "[#test one] [#test2 two]",
			want: []Element{
				fn("test", nil, text("one")),
				text(" "),
				fn("test2", nil, text("two")),
			},
		},
		{
			name:  "argument block",
			input: "[#p It has a [#b bold] word]",
			want: []Element{
				fn("p", nil, Block{Elements: []Element{
					text("It has a "),
					fn("b", nil, text("bold")),
					text(" word"),
				}}),
			},
		},
		{
			name:  "nested call alone collapses",
			input: "[#list  [#b x]  | y]",
			want:  []Element{fn("list", nil, fn("b", nil, text("x")), text("y"))},
		},
		{
			name:  "linebreak inside argument",
			input: "[#p a\n\nb]",
			want: []Element{
				fn("p", nil, Block{Elements: []Element{text("a"), HardLinebreak{}, text("b")}}),
			},
		},
		{
			name:  "parens inside argument",
			input: "[#p f(x) | (y)]",
			want:  []Element{fn("p", nil, text("f(x)"), text("(y)"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !reflect.DeepEqual(stripAll(got), tt.want) {
				t.Errorf("got %#v\nwant %#v", stripAll(got), tt.want)
			}
		})
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"stray right bracket", "a ] b", ErrUnexpectedToken},
		{"stray right paren", "a ) b", ErrUnexpectedToken},
		{"stray separator", "a | b", ErrUnexpectedToken},
		{"stray attribute", "mail me @home", ErrUnexpectedToken},
		{"stray function identifier", "#tag", ErrUnexpectedToken},
		{"bare sigil in call", "[# x]", ErrUnexpectedToken},
		{"missing function name", "[b x]", ErrUnexpectedToken},
		{"unterminated call", "[#b bold", ErrUnexpectedEnd},
		{"unterminated call after separator", "[#b bold |", ErrUnexpectedEnd},
		{"open bracket at end", "[", ErrUnexpectedEnd},
		{"unterminated attribute value", "[#b @v(x", ErrUnexpectedEnd},
		{"bracket in attribute value", "[#b @v([x]) y]", ErrMalformedAttribute},
		{"linebreak in attribute value", "[#b @v(x\n\ny) z]", ErrMalformedAttribute},
		{"attribute after arguments", "[#b x @late]", ErrMalformedAttribute},
		{"unbalanced paren in argument", "[#b x)]", ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, tt.kind) {
				t.Errorf("got %v, want kind %v", err, tt.kind)
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("got %v, want a parse error", err)
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("got %T, want *Error", err)
			}

			if _, ok := e.Span(); !ok {
				t.Errorf("parse error %v carries no span", err)
			}
		})
	}
}

func TestParser_Lazy(t *testing.T) {
	// Elements before a malformed one are still produced.
	p := NewParser("first [#b ok] ]")

	el, err := p.Next()
	if err != nil {
		t.Fatalf("first element: %v", err)
	}

	if got := strip(el); !reflect.DeepEqual(got, text("first ")) {
		t.Errorf("first element = %#v", got)
	}

	if _, err := p.Next(); err != nil {
		t.Fatalf("second element: %v", err)
	}

	if _, err := p.Next(); err != nil {
		t.Fatalf("third element: %v", err)
	}

	_, err = p.Next()
	if !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("fourth element: got %v, want unexpected token", err)
	}

	// Errors are terminal.
	if _, again := p.Next(); again != err {
		t.Errorf("after error got %v, want %v", again, err)
	}
}

func TestParser_EOF(t *testing.T) {
	p := NewParser("x")

	if _, err := p.Next(); err != nil {
		t.Fatal(err)
	}

	for range 2 {
		if _, err := p.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("got %v, want io.EOF", err)
		}
	}
}

func TestParser_AllStopsAtError(t *testing.T) {
	var (
		n    int
		errs int
	)

	for _, err := range NewParser("a [#b c] ) d").All() {
		if err != nil {
			errs++

			continue
		}

		n++
	}

	if n != 3 || errs != 1 {
		t.Errorf("got %d elements and %d errors, want 3 and 1", n, errs)
	}
}

func TestParser_Spans(t *testing.T) {
	src := "  x [#b @k(v) bold  | two ] y"

	els, err := ParseString(src)
	if err != nil {
		t.Fatal(err)
	}

	if len(els) != 3 {
		t.Fatalf("got %d elements, want 3", len(els))
	}

	f, ok := els[1].(Function)
	if !ok {
		t.Fatalf("element 1 is %T, want Function", els[1])
	}

	if got := f.Span.Slice(src); got != "[#b @k(v) bold  | two ]" {
		t.Errorf("function span covers %q", got)
	}

	for i, arg := range f.Arguments {
		tx := arg.(Text)
		if got := tx.Span.Slice(src); got != tx.Value {
			t.Errorf("argument %d span covers %q, value is %q", i, got, tx.Value)
		}
	}

	if got := els[0].(Text).Span.Slice(src); got != "x " {
		t.Errorf("leading text span covers %q", got)
	}
}

func TestParser_MaxDepth(t *testing.T) {
	nest := func(n int) string {
		return strings.Repeat("[#b ", n) + "x" + strings.Repeat("]", n)
	}

	if _, err := ParseString(nest(3), WithMaxDepth(3)); err != nil {
		t.Fatalf("depth 3: %v", err)
	}

	_, err := ParseString(nest(4), WithMaxDepth(3))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("depth 4: got %v, want max depth exceeded", err)
	}

	if _, err := ParseString(nest(DefaultMaxDepth)); err != nil {
		t.Fatalf("default depth: %v", err)
	}
}

func TestBlock_Extent(t *testing.T) {
	b := Block{Elements: []Element{
		Text{Value: "a", Span: Span{Start: 4, End: 5}},
		HardLinebreak{Span: Span{Start: 5, End: 7}},
		Text{Value: "b", Span: Span{Start: 7, End: 8}},
	}}

	if got := b.Extent(); got != (Span{Start: 4, End: 8}) {
		t.Errorf("Extent() = %v, want 4..8", got)
	}
}
