package lang

//go:generate go tool stringer --linecomment --type TokenKind --output token_string.go

import "strconv"

// Span is a half-open byte range into the lexed source.
type Span struct {
	Start int // inclusive
	End   int // exclusive
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool { return s.Start >= s.End }

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}

	if other.End > s.End {
		s.End = other.End
	}

	return s
}

// Slice returns the text of src covered by the span.
func (s Span) Slice(src string) string { return src[s.Start:s.End] }

func (s Span) String() string {
	return strconv.Itoa(s.Start) + ".." + strconv.Itoa(s.End)
}

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	TokenText                TokenKind = iota // text
	TokenWhitespace                           // whitespace
	TokenHardLinebreak                        // linebreak
	TokenLeftBracket                          // [
	TokenRightBracket                         // ]
	TokenLeftParen                            // (
	TokenRightParen                           // )
	TokenAttributeIdentifier                  // @attribute
	TokenFunctionIdentifier                   // #function
	TokenArgumentSeparator                    // |
	TokenError                                // error
)

// Token is a lexical unit. It does not own any text; use [Token.Text] to view
// the source it covers.
type Token struct {
	Kind TokenKind
	Span Span
}

// Text returns the source text covered by the token.
func (t Token) Text(src string) string { return t.Span.Slice(src) }
