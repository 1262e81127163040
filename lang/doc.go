// Package lang implements the noet markup engine: a lexer, a lazily-driven
// recursive descent parser, and a tree-walking evaluator that dispatches
// inline function calls to host-registered Go functions.
//
// # Syntax
//
// Informal grammar:
//
//	Document   → Element*
//	Element    → Text | Linebreak | Call
//	Call       → '[' '#' Ident Attr* ('|')? (Arg ('|' Arg)*)? ']'
//	Attr       → '@' Ident ('(' Text ')')?
//	Arg        → Element*                // trimmed, collapsed
//	Ident      → [A-Za-z0-9-]+
//	Linebreak  → "\n\n"
//
// Parentheses may appear in ordinary text as long as they balance. An
// argument containing more than one element is represented as a [Block].
//
// # Example
//
//	[#title A short note]
//
//	It contains a [#b bold] word and a table:
//
//	[#table @cols(2) @header
//	| Name  | Score
//	| Apple | 4
//	]
//
// # Embedding
//
// A host supplies two types. The value type V implements [Value] and is the
// output of evaluation. The context type C implements [Context] and registers
// the functions a document may call:
//
//	func (n *Note) RegisterFunctions(r *lang.Registry[*Note, Node]) {
//		lang.Register1(r, "b", bold)
//		lang.Register1(r, "list", list)
//	}
//
//	func bold(_ *Note, _ lang.Attrs, inner Node) (Node, error) { ... }
//	func list(_ *Note, _ lang.Attrs, items lang.Variadic[Node]) (Node, error) { ... }
//
// Evaluation then needs explicit type arguments:
//
//	ev := lang.NewEvaluator[*Note, Node](note)
//	nodes, err := ev.EvaluateString(src)
//
// Parameters are bound from the call by their Go type. Host values are
// evaluated on demand, primitive types are parsed from literal text, and the
// wrappers [Attr], [Flag], [Optional] and [Variadic] select attribute-sourced,
// optional and variadic binding.
package lang
