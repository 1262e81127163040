package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Error kinds. Every error produced by the engine matches exactly one of
// [ErrParse], [ErrType] or [ErrEvaluate] with [errors.Is], and usually one of
// the more specific kinds derived from them.
var (
	ErrParse    = NewError("parse error")
	ErrType     = NewError("type error")
	ErrEvaluate = NewError("evaluation error")
)

// Parse errors.
var (
	ErrUnexpectedToken    = ErrParse.Kind("unexpected token")
	ErrUnexpectedEnd      = ErrParse.Kind("unexpected end of input")
	ErrMalformedAttribute = ErrParse.Kind("malformed attribute")
	ErrMaxDepthExceeded   = ErrParse.Kind("maximum nesting depth exceeded")
)

// Type errors.
var (
	ErrArgumentMissing  = ErrType.Kind("argument missing")
	ErrNotLiteral       = ErrType.Kind("argument is not literal text")
	ErrInvalidLiteral   = ErrType.Kind("invalid literal")
	ErrTooManyArguments = ErrType.Kind("too many arguments")
)

// Evaluation errors.
var (
	ErrNotRegistered = ErrEvaluate.Kind("function not registered")
	ErrNoValue       = ErrEvaluate.Kind("argument produced no value")
)

// Error represents an engine error with an optional source span and
// attributes for structured logging. It implements both error and
// slog.LogValuer.
type Error struct {
	msg    string
	err    error       // wrapped error (for errors.Unwrap)
	parent *Error      // kind this error was derived from
	span   *Span       // offending source range, if known
	attrs  []slog.Attr // attributes for structured logging
}

// NewError creates a new root error kind with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Kind derives a new error kind from e. Errors of the new kind also match e
// with [errors.Is].
func (e *Error) Kind(msg string) *Error {
	return &Error{msg: msg, parent: e}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using whichever fields are set:
	//
	//   "<kind>: <msg> at <span> in #<function> (param <n>, type <t>): <err>"
	part := make([]string, 0, 3)

	head := e.msg
	if head != "" {
		if root := e.root(); root != e && root.msg != "" && root.msg != e.msg {
			head = root.msg + ": " + head
		}

		if e.span != nil {
			head += " at " + e.span.String()
		}
	}

	if where := e.context(); where != "" {
		if head != "" {
			head += " "
		}

		head += where
	}

	if head != "" {
		part = append(part, head)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// context renders the call site attributes that identify where an
// evaluation failed.
func (e *Error) context() string {
	var s string

	if v, ok := e.Attr("function"); ok {
		s = "in #" + v.String()
	}

	var detail []string

	if v, ok := e.Attr("param"); ok {
		detail = append(detail, "param "+v.String())
	}

	if v, ok := e.Attr("type"); ok {
		detail = append(detail, "type "+v.String())
	}

	if len(detail) > 0 {
		if s != "" {
			s += " "
		}

		s += "(" + strings.Join(detail, ", ") + ")"
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether e was derived from the error kind target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	for k := e; k != nil; k = k.parent {
		if k == t {
			return true
		}
	}

	return false
}

// Span returns the source range the error refers to, if any.
func (e *Error) Span() (Span, bool) {
	if e.span == nil {
		return Span{}, false
	}

	return *e.span, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.span != nil {
		attrs = append(attrs,
			slog.Int("start", e.span.Start),
			slog.Int("end", e.span.End))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error of the same kind wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// At creates a new Error of the same kind referring to span.
func (e *Error) At(span Span) *Error {
	c := e.derive()
	c.span = &span

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// Attr returns the value of the structured attribute key, if present.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

// derive copies e. Copies of a sentinel point back to it as their kind so
// that errors.Is keeps matching.
func (e *Error) derive() *Error {
	c := *e
	if e.isSentinel() {
		c.parent = e
	}

	return &c
}

func (e *Error) isSentinel() bool {
	return e.err == nil && e.span == nil && len(e.attrs) == 0
}

func (e *Error) root() *Error {
	r := e
	for r.parent != nil {
		r = r.parent
	}

	return r
}
