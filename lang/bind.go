package lang

import (
	"fmt"
	"log/slog"
)

// A parameter of an adapted function is bound from the call by its type:
//
//   - V (the host value type): the next argument is evaluated and must
//     produce a value.
//   - string, bool, integer and float types, and types implementing
//     encoding.TextUnmarshaler: the next argument must be literal text,
//     which is parsed.
//   - [Element]: the next argument, unevaluated.
//   - [ArgBinder]: the next argument is passed to BindArg.
//   - a type embedding [Attr] or [Flag]: the attribute named by its AttrKey.
//     Attribute parameters do not consume arguments.
//   - [Optional]: the next argument if one remains.
//   - [Variadic]: every remaining argument. It must be the last parameter.

// ArgBinder is implemented by pointers to host types with custom binding of
// a positional argument.
type ArgBinder[C any, V Value[V]] interface {
	BindArg(ev *Evaluator[C, V], el Element) error
}

// AttrKeyer names the attribute a parameter is bound from. It is implemented
// by host types embedding [Attr] or [Flag]:
//
//	type Lang struct{ lang.Attr[string] }
//
//	func (Lang) AttrKey() string { return "lang" }
type AttrKeyer interface {
	AttrKey() string
}

// Attr binds the value of a key/value attribute. Embed it in a type
// implementing [AttrKeyer]. An absent attribute leaves Valid false.
type Attr[T any] struct {
	Value T
	Valid bool
}

// Get returns the attribute value and whether the attribute was present.
func (a Attr[T]) Get() (T, bool) { return a.Value, a.Valid }

func (a *Attr[T]) bindAttr(key string, attrs Attrs) error {
	v, ok, err := AttrValue[T](attrs, key)
	if err != nil {
		return err
	}

	a.Value, a.Valid = v, ok

	return nil
}

func (a *Attr[T]) elem() any { return new(T) }

// Flag binds the presence of an attribute. Embed it in a type implementing
// [AttrKeyer].
type Flag struct {
	Set bool
}

func (f *Flag) bindAttr(key string, attrs Attrs) error {
	f.Set = attrs.Has(key)

	return nil
}

func (f *Flag) elem() any { return nil }

// Variadic binds every remaining positional argument, each as a T.
type Variadic[T any] []T

func (v *Variadic[T]) bindRest(n int, bind func(dst any) error) error {
	*v = make(Variadic[T], n)

	for i := range *v {
		if err := bind(&(*v)[i]); err != nil {
			return err
		}
	}

	return nil
}

func (v *Variadic[T]) elem() any { return new(T) }

func (o *Optional[T]) bindNext(bind func(dst any) error) error {
	if err := bind(&o.Value); err != nil {
		return err
	}

	o.Valid = true

	return nil
}

func (o *Optional[T]) elem() any { return new(T) }

type attrParam interface {
	AttrKeyer
	bindAttr(key string, attrs Attrs) error
	elem() any
}

type restParam interface {
	bindRest(n int, bind func(dst any) error) error
	elem() any
}

type optionalParam interface {
	bindNext(bind func(dst any) error) error
	elem() any
}

// call is the binding state of one function call.
type call[C any, V Value[V]] struct {
	ev    *Evaluator[C, V]
	attrs Attrs
	args  []Element
	next  int // index of the next positional argument
	param int // 1-based index of the parameter being bound
}

func newCall[C any, V Value[V]](ev *Evaluator[C, V], attrs Attrs, args []Element) *call[C, V] {
	return &call[C, V]{ev: ev, attrs: attrs, args: args}
}

// bind fills the parameter dst points to.
func (c *call[C, V]) bind(dst any) error {
	c.param++

	switch d := dst.(type) {
	case attrParam:
		if err := d.bindAttr(d.AttrKey(), c.attrs); err != nil {
			return WrapError(err).With(slog.Int("param", c.param))
		}

		return nil

	case restParam:
		n := len(c.args) - c.next

		return d.bindRest(n, c.bindPositional)

	case optionalParam:
		if c.next >= len(c.args) {
			return nil
		}

		return d.bindNext(c.bindPositional)

	default:
		return c.bindPositional(dst)
	}
}

// bindPositional binds the next positional argument into dst.
func (c *call[C, V]) bindPositional(dst any) error {
	if c.next >= len(c.args) {
		return ErrArgumentMissing.With(
			slog.Int("param", c.param),
			slog.String("type", typeName(dst)))
	}

	el := c.args[c.next]
	c.next++

	return c.bindElement(el, dst)
}

func (c *call[C, V]) bindElement(el Element, dst any) error {
	switch d := dst.(type) {
	case *V:
		v, err := c.ev.Evaluate(el)
		if err != nil {
			return err
		}

		if !v.Valid {
			return ErrNoValue.At(el.Extent()).With(slog.Int("param", c.param))
		}

		*d = v.Value

		return nil

	case *Element:
		*d = el

		return nil

	case ArgBinder[C, V]:
		return d.BindArg(c.ev, el)
	}

	t, ok := el.(Text)
	if !ok {
		return ErrNotLiteral.At(el.Extent()).With(
			slog.Int("param", c.param),
			slog.String("type", typeName(dst)),
			slog.String("found", elementKind(el)))
	}

	if err := parseLiteral(t.Value, dst); err != nil {
		return WrapError(err).At(t.Span).With(slog.Int("param", c.param))
	}

	return nil
}

// done checks the arguments left after every parameter was bound.
func (c *call[C, V]) done() error {
	if !c.ev.opts.strictArity || c.next >= len(c.args) {
		return nil
	}

	return ErrTooManyArguments.At(c.args[c.next].Extent()).With(
		slog.Int("expected", c.next),
		slog.Int("found", len(c.args)))
}

// checkParams panics unless every parameter type can be bound and only the
// last parameter is variadic. Each entry of params points to the zero value
// of a parameter type.
func checkParams[C any, V Value[V]](params ...any) {
	for i, p := range params {
		switch d := p.(type) {
		case attrParam:
			if e := d.elem(); e != nil && !isScalar(e) {
				panic(fmt.Sprintf("lang: parameter %d: unsupported attribute type %s",
					i+1, typeName(e)))
			}

			continue

		case restParam:
			if i != len(params)-1 {
				panic(fmt.Sprintf("lang: parameter %d: variadic parameter must be last", i+1))
			}

			p = d.elem()

		case optionalParam:
			p = d.elem()
		}

		if !bindable[C, V](p) {
			panic(fmt.Sprintf("lang: parameter %d: unsupported type %s", i+1, typeName(p)))
		}
	}
}

func bindable[C any, V Value[V]](p any) bool {
	switch p.(type) {
	case *V, *Element, ArgBinder[C, V]:
		return true
	}

	return isScalar(p)
}
