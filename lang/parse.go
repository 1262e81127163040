package lang

import (
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"
)

// ParseString parses every top-level element of src.
func ParseString(src string, opts ...Option) ([]Element, error) {
	var elements []Element

	for el, err := range NewParser(src, opts...).All() {
		if err != nil {
			return nil, err
		}

		elements = append(elements, el)
	}

	return elements, nil
}

// Parser produces the top-level elements of a document one at a time.
//
// Parsing stops at the first error; every later call to [Parser.Next]
// returns the same error.
type Parser struct {
	lex   *Lexer
	src   string
	tok   Token
	ahead bool // tok holds a lookahead token
	depth int
	err   error
	opts  options
}

// NewParser returns a parser over src.
func NewParser(src string, opts ...Option) *Parser {
	return &Parser{
		lex:  NewLexer(src),
		src:  src,
		opts: makeOptions(opts...),
	}
}

// Next returns the next top-level element. It returns io.EOF when the
// document is exhausted.
func (p *Parser) Next() (Element, error) {
	if p.err != nil {
		return nil, p.err
	}

	if _, ok := p.peek(); !ok {
		p.err = io.EOF

		return nil, p.err
	}

	el, err := p.parseElement()
	if err != nil {
		p.err = err
		p.opts.logger.Trace("parse failed", slog.Any("error", err))

		return nil, err
	}

	p.opts.logger.Trace("parsed element",
		slog.String("kind", elementKind(el)),
		slog.String("span", el.Extent().String()))

	return el, nil
}

// All returns an iterator over the remaining top-level elements. Iteration
// ends after the document is exhausted or after the first error is yielded.
func (p *Parser) All() iter.Seq2[Element, error] {
	return func(yield func(Element, error) bool) {
		for {
			el, err := p.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(el, err) || err != nil {
				return
			}
		}
	}
}

// parseElement dispatches on the next token:
//
//	Element → Text | Linebreak | Call
func (p *Parser) parseElement() (Element, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.unexpectedEnd(Span{Start: p.lex.end, End: p.lex.end}, "element")
	}

	switch tok.Kind {
	case TokenText, TokenWhitespace, TokenLeftParen:
		return p.parseText(), nil

	case TokenHardLinebreak:
		p.advance()

		return HardLinebreak{Span: tok.Span}, nil

	case TokenLeftBracket:
		return p.parseCall()

	default:
		return nil, p.unexpected(tok, "element")
	}
}

// parseText consumes a run of text, whitespace and balanced parentheses.
// A closing parenthesis without a matching opening one ends the run and is
// left unconsumed.
func (p *Parser) parseText() Text {
	start, _ := p.peek()
	span := Span{Start: start.Span.Start, End: start.Span.Start}
	depth := 0

loop:
	for {
		tok, ok := p.peek()
		if !ok {
			break
		}

		switch tok.Kind {
		case TokenText, TokenWhitespace:
		case TokenLeftParen:
			depth++
		case TokenRightParen:
			if depth == 0 {
				break loop
			}

			depth--
		default:
			break loop
		}

		p.advance()

		span.End = tok.Span.End
	}

	return Text{Value: span.Slice(p.src), Span: span}
}

// parseCall parses a function call:
//
//	Call → '[' '#' Ident Attr* ('|')? (Arg ('|' Arg)*)? ']'
func (p *Parser) parseCall() (Element, error) {
	open := p.advance()

	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.opts.maxDepth {
		return nil, ErrMaxDepthExceeded.At(open.Span).
			With(slog.Int("max_depth", p.opts.maxDepth))
	}

	ident, err := p.expect(TokenFunctionIdentifier, open.Span)
	if err != nil {
		return nil, err
	}

	fn := Function{Name: ident.Text(p.src)[1:]}

	p.skipWhitespace()

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != TokenAttributeIdentifier {
			break
		}

		attr, err := p.parseAttribute(open.Span)
		if err != nil {
			return nil, err
		}

		fn.Attributes = append(fn.Attributes, attr)

		p.skipWhitespace()
	}

	if tok, ok := p.peek(); ok && tok.Kind == TokenArgumentSeparator {
		p.advance()
	}

	for {
		tok, ok := p.peek()
		if !ok {
			return nil, p.unexpectedEnd(p.through(open.Span), "]")
		}

		if tok.Kind == TokenRightBracket {
			p.advance()

			fn.Span = open.Span.Cover(tok.Span)

			return fn, nil
		}

		group, err := p.parseGroup()
		if err != nil {
			return nil, err
		}

		if arg := collapse(trimGroup(group)); arg != nil {
			fn.Arguments = append(fn.Arguments, arg)
		}

		tok, ok = p.peek()

		switch {
		case !ok:
			return nil, p.unexpectedEnd(p.through(open.Span), "]")

		case tok.Kind == TokenArgumentSeparator:
			p.advance()

		case tok.Kind == TokenAttributeIdentifier:
			return nil, ErrMalformedAttribute.At(tok.Span).With(
				slog.String("attribute", tok.Text(p.src)),
				slog.String("reason", "attribute after arguments"))
		}
	}
}

// parseAttribute parses one attribute:
//
//	Attr → '@' Ident ('(' Text ')')?
func (p *Parser) parseAttribute(call Span) (Attribute, error) {
	ident := p.advance()
	key := ident.Text(p.src)[1:]

	if tok, ok := p.peek(); !ok || tok.Kind != TokenLeftParen {
		return NewFlag(key), nil
	}

	p.advance()

	value := p.parseText()

	tok, ok := p.peek()
	if !ok {
		return Attribute{}, p.unexpectedEnd(p.through(call), ")")
	}

	if tok.Kind != TokenRightParen {
		return Attribute{}, ErrMalformedAttribute.At(tok.Span).With(
			slog.String("attribute", key),
			slog.String("found", tok.Kind.String()))
	}

	p.advance()

	return NewValue(key, value.Value), nil
}

// parseGroup parses the elements of one argument, up to the next separator,
// closing bracket or attribute identifier.
func (p *Parser) parseGroup() ([]Element, error) {
	var group []Element

	for {
		tok, ok := p.peek()
		if !ok {
			return group, nil
		}

		switch tok.Kind {
		case TokenArgumentSeparator, TokenRightBracket, TokenAttributeIdentifier:
			return group, nil
		}

		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		group = append(group, el)
	}
}

func (p *Parser) skipWhitespace() {
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != TokenWhitespace {
			return
		}

		p.advance()
	}
}

func (p *Parser) expect(kind TokenKind, call Span) (Token, error) {
	tok, ok := p.peek()
	if !ok {
		return Token{}, p.unexpectedEnd(p.through(call), kind.String())
	}

	if tok.Kind != kind {
		return Token{}, p.unexpected(tok, kind.String())
	}

	return p.advance(), nil
}

func (p *Parser) peek() (Token, bool) {
	if !p.ahead {
		tok, ok := p.lex.Next()
		if !ok {
			return Token{}, false
		}

		p.tok, p.ahead = tok, true
	}

	return p.tok, true
}

func (p *Parser) advance() Token {
	tok, _ := p.peek()
	p.ahead = false

	return tok
}

// through returns the span from the start of s to the end of the input.
func (p *Parser) through(s Span) Span {
	return Span{Start: s.Start, End: p.lex.end}
}

func (p *Parser) unexpected(tok Token, expected string) *Error {
	return ErrUnexpectedToken.At(tok.Span).With(
		slog.String("expected", expected),
		slog.String("found", tok.Kind.String()),
		slog.String("text", tok.Text(p.src)))
}

func (p *Parser) unexpectedEnd(span Span, expected string) *Error {
	return ErrUnexpectedEnd.At(span).With(slog.String("expected", expected))
}

const whitespace = " \t\n\r"

// trimGroup removes leading whitespace from the first element and trailing
// whitespace from the last element of an argument group, when they are
// text. Text left empty is dropped.
func trimGroup(group []Element) []Element {
	if len(group) == 0 {
		return group
	}

	if t, ok := group[0].(Text); ok {
		v := strings.TrimLeft(t.Value, whitespace)
		t.Span.Start += len(t.Value) - len(v)
		t.Value = v

		if v == "" {
			group = group[1:]
		} else {
			group[0] = t
		}
	}

	if len(group) == 0 {
		return group
	}

	if t, ok := group[len(group)-1].(Text); ok {
		v := strings.TrimRight(t.Value, whitespace)
		t.Span.End -= len(t.Value) - len(v)
		t.Value = v

		if v == "" {
			group = group[:len(group)-1]
		} else {
			group[len(group)-1] = t
		}
	}

	return group
}

// collapse returns the element representing an argument group: nil for an
// empty group, the element itself for a group of one, or a [Block].
func collapse(group []Element) Element {
	switch len(group) {
	case 0:
		return nil
	case 1:
		return group[0]
	default:
		return Block{Elements: group}
	}
}
