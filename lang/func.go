package lang

import (
	"fmt"
	"reflect"
)

// The adapters below turn a typed Go function into a [Callable]. The
// function receives the context and the call attributes followed by its
// parameters, bound left to right from the call as described for
// [ArgBinder]. Its result R is one of:
//
//   - V: a value.
//   - *V or Optional[V]: a value or nothing (nil pointer, invalid optional).
//   - Unit: nothing.
//
// An adapter panics if R or a parameter type is not supported, or if a
// [Variadic] parameter is not the last one. The RegisterN helpers adapt and
// register in one step and infer every type parameter from their arguments.

// Func0 adapts a function without parameters.
func Func0[C any, V Value[V], R any](fn func(C, Attrs) (R, error)) Callable[C, V] {
	result := resultOf[V, R]()

	return func(ev *Evaluator[C, V], ctx C, attrs Attrs, args []Element) (Optional[V], error) {
		c := newCall(ev, attrs, args)

		if err := c.done(); err != nil {
			return None[V](), err
		}

		r, err := fn(ctx, attrs)
		if err != nil {
			return None[V](), err
		}

		return result(r), nil
	}
}

// Func1 adapts a function with one parameter.
func Func1[C any, V Value[V], P1, R any](fn func(C, Attrs, P1) (R, error)) Callable[C, V] {
	result := resultOf[V, R]()
	checkParams[C, V](new(P1))

	return func(ev *Evaluator[C, V], ctx C, attrs Attrs, args []Element) (Optional[V], error) {
		c := newCall(ev, attrs, args)

		var p1 P1

		if err := bindAll(c, &p1); err != nil {
			return None[V](), err
		}

		r, err := fn(ctx, attrs, p1)
		if err != nil {
			return None[V](), err
		}

		return result(r), nil
	}
}

// Func2 adapts a function with two parameters.
func Func2[C any, V Value[V], P1, P2, R any](fn func(C, Attrs, P1, P2) (R, error)) Callable[C, V] {
	result := resultOf[V, R]()
	checkParams[C, V](new(P1), new(P2))

	return func(ev *Evaluator[C, V], ctx C, attrs Attrs, args []Element) (Optional[V], error) {
		c := newCall(ev, attrs, args)

		var (
			p1 P1
			p2 P2
		)

		if err := bindAll(c, &p1, &p2); err != nil {
			return None[V](), err
		}

		r, err := fn(ctx, attrs, p1, p2)
		if err != nil {
			return None[V](), err
		}

		return result(r), nil
	}
}

// Func3 adapts a function with three parameters.
func Func3[C any, V Value[V], P1, P2, P3, R any](
	fn func(C, Attrs, P1, P2, P3) (R, error),
) Callable[C, V] {
	result := resultOf[V, R]()
	checkParams[C, V](new(P1), new(P2), new(P3))

	return func(ev *Evaluator[C, V], ctx C, attrs Attrs, args []Element) (Optional[V], error) {
		c := newCall(ev, attrs, args)

		var (
			p1 P1
			p2 P2
			p3 P3
		)

		if err := bindAll(c, &p1, &p2, &p3); err != nil {
			return None[V](), err
		}

		r, err := fn(ctx, attrs, p1, p2, p3)
		if err != nil {
			return None[V](), err
		}

		return result(r), nil
	}
}

// Func4 adapts a function with four parameters.
func Func4[C any, V Value[V], P1, P2, P3, P4, R any](
	fn func(C, Attrs, P1, P2, P3, P4) (R, error),
) Callable[C, V] {
	result := resultOf[V, R]()
	checkParams[C, V](new(P1), new(P2), new(P3), new(P4))

	return func(ev *Evaluator[C, V], ctx C, attrs Attrs, args []Element) (Optional[V], error) {
		c := newCall(ev, attrs, args)

		var (
			p1 P1
			p2 P2
			p3 P3
			p4 P4
		)

		if err := bindAll(c, &p1, &p2, &p3, &p4); err != nil {
			return None[V](), err
		}

		r, err := fn(ctx, attrs, p1, p2, p3, p4)
		if err != nil {
			return None[V](), err
		}

		return result(r), nil
	}
}

// Func5 adapts a function with five parameters.
func Func5[C any, V Value[V], P1, P2, P3, P4, P5, R any](
	fn func(C, Attrs, P1, P2, P3, P4, P5) (R, error),
) Callable[C, V] {
	result := resultOf[V, R]()
	checkParams[C, V](new(P1), new(P2), new(P3), new(P4), new(P5))

	return func(ev *Evaluator[C, V], ctx C, attrs Attrs, args []Element) (Optional[V], error) {
		c := newCall(ev, attrs, args)

		var (
			p1 P1
			p2 P2
			p3 P3
			p4 P4
			p5 P5
		)

		if err := bindAll(c, &p1, &p2, &p3, &p4, &p5); err != nil {
			return None[V](), err
		}

		r, err := fn(ctx, attrs, p1, p2, p3, p4, p5)
		if err != nil {
			return None[V](), err
		}

		return result(r), nil
	}
}

// Register0 registers fn under name using [Func0].
func Register0[C any, V Value[V], R any](
	r *Registry[C, V], name string, fn func(C, Attrs) (R, error),
) {
	r.Register(name, Func0[C, V](fn))
}

// Register1 registers fn under name using [Func1].
func Register1[C any, V Value[V], P1, R any](
	r *Registry[C, V], name string, fn func(C, Attrs, P1) (R, error),
) {
	r.Register(name, Func1[C, V](fn))
}

// Register2 registers fn under name using [Func2].
func Register2[C any, V Value[V], P1, P2, R any](
	r *Registry[C, V], name string, fn func(C, Attrs, P1, P2) (R, error),
) {
	r.Register(name, Func2[C, V](fn))
}

// Register3 registers fn under name using [Func3].
func Register3[C any, V Value[V], P1, P2, P3, R any](
	r *Registry[C, V], name string, fn func(C, Attrs, P1, P2, P3) (R, error),
) {
	r.Register(name, Func3[C, V](fn))
}

// Register4 registers fn under name using [Func4].
func Register4[C any, V Value[V], P1, P2, P3, P4, R any](
	r *Registry[C, V], name string, fn func(C, Attrs, P1, P2, P3, P4) (R, error),
) {
	r.Register(name, Func4[C, V](fn))
}

// Register5 registers fn under name using [Func5].
func Register5[C any, V Value[V], P1, P2, P3, P4, P5, R any](
	r *Registry[C, V], name string, fn func(C, Attrs, P1, P2, P3, P4, P5) (R, error),
) {
	r.Register(name, Func5[C, V](fn))
}

func bindAll[C any, V Value[V]](c *call[C, V], params ...any) error {
	for _, p := range params {
		if err := c.bind(p); err != nil {
			return err
		}
	}

	return c.done()
}

// resultOf returns the conversion of a function result R to the outcome of
// a call. It panics if R is not supported.
func resultOf[V Value[V], R any]() func(R) Optional[V] {
	var r R

	switch any(r).(type) {
	case V:
		return func(r R) Optional[V] { return Some(any(r).(V)) }

	case *V:
		return func(r R) Optional[V] {
			if p := any(r).(*V); p != nil {
				return Some(*p)
			}

			return None[V]()
		}

	case Optional[V]:
		return func(r R) Optional[V] { return any(r).(Optional[V]) }

	case Unit:
		return func(R) Optional[V] { return None[V]() }
	}

	panic(fmt.Sprintf("lang: unsupported result type %s",
		reflect.TypeFor[R]().String()))
}
