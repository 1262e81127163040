package lang

import "iter"

// Lexer converts source text into a lazy, finite sequence of tokens.
//
// Leading and trailing whitespace of the source is skipped; token spans are
// still offsets into the source given to [NewLexer]. A Lexer makes a single
// forward pass and cannot be restarted.
type Lexer struct {
	src string
	pos int
	end int
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	start, end := 0, len(src)

	for start < end && isSpace(src[start]) {
		start++
	}

	for end > start && isSpace(src[end-1]) {
		end--
	}

	return &Lexer{src: src, pos: start, end: end}
}

// Source returns the source text the lexer was created with.
func (l *Lexer) Source() string { return l.src }

// Next returns the next token, or false when the input is exhausted.
func (l *Lexer) Next() (Token, bool) {
	if l.pos >= l.end {
		return Token{}, false
	}

	start := l.pos
	ch := l.src[l.pos]

	var kind TokenKind

	switch ch {
	case '[':
		kind = TokenLeftBracket
		l.pos++

	case ']':
		kind = TokenRightBracket
		l.pos++

	case '(':
		kind = TokenLeftParen
		l.pos++

	case ')':
		kind = TokenRightParen
		l.pos++

	case '|':
		kind = TokenArgumentSeparator
		l.pos++

	case '#', '@':
		l.pos++
		for l.pos < l.end && isIdentifier(l.src[l.pos]) {
			l.pos++
		}

		switch {
		case l.pos == start+1:
			kind = TokenError
		case ch == '#':
			kind = TokenFunctionIdentifier
		default:
			kind = TokenAttributeIdentifier
		}

	default:
		switch {
		case l.linebreakAt(l.pos):
			kind = TokenHardLinebreak
			l.pos += 2

		case isSpace(ch):
			kind = TokenWhitespace
			for l.pos < l.end && isSpace(l.src[l.pos]) && !l.linebreakAt(l.pos) {
				l.pos++
			}

		default:
			kind = TokenText
			for l.pos < l.end && !isTextEnd(l.src[l.pos]) {
				l.pos++
			}
		}
	}

	return Token{Kind: kind, Span: Span{Start: start, End: l.pos}}, true
}

// All returns an iterator over the remaining tokens.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// linebreakAt reports whether a hard linebreak (two newlines) begins at i.
func (l *Lexer) linebreakAt(i int) bool {
	return i+1 < l.end && l.src[i] == '\n' && l.src[i+1] == '\n'
}

// Character classification

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentifier(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-'
}

func isTextEnd(c byte) bool {
	switch c {
	case '[', ']', '(', ')', '|', '#', '@':
		return true
	}

	return isSpace(c)
}
