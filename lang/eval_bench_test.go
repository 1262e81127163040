package lang

import (
	"strings"
	"testing"
)

var benchDocuments = []struct {
	name string
	src  string
}{
	{"text", strings.Repeat("Just some plain words in a paragraph. ", 50)},
	{"calls", strings.Repeat("A [#b bold] and [#list | one | two] call. ", 50)},
	{"nested", strings.Repeat("[#b ", 40) + "deep" + strings.Repeat("]", 40)},
	{"paragraphs", strings.Repeat("[#title T] para\n\n", 100)},
}

func BenchmarkLexer(b *testing.B) {
	for _, bb := range benchDocuments {
		b.Run(bb.name, func(b *testing.B) {
			b.SetBytes(int64(len(bb.src)))
			b.ReportAllocs()

			for b.Loop() {
				for range NewLexer(bb.src).All() {
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	for _, bb := range benchDocuments {
		b.Run(bb.name, func(b *testing.B) {
			b.SetBytes(int64(len(bb.src)))
			b.ReportAllocs()

			for b.Loop() {
				if _, err := ParseString(bb.src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEvaluate(b *testing.B) {
	for _, bb := range benchDocuments {
		b.Run(bb.name, func(b *testing.B) {
			ev := NewEvaluator[*doc, node](&doc{})

			b.SetBytes(int64(len(bb.src)))
			b.ReportAllocs()

			for b.Loop() {
				if _, err := ev.EvaluateString(bb.src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
