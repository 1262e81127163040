package lang

import (
	"iter"
	"log/slog"
)

// Evaluator evaluates parsed elements against the functions of a host
// context.
//
// An Evaluator is not safe for concurrent use. Functions observe the
// context mutations of every function evaluated before them.
type Evaluator[C any, V Value[V]] struct {
	ctx      C
	registry *Registry[C, V]
	opts     options
	parse    []Option
}

// NewEvaluator returns an evaluator over ctx. The registry is populated by
// calling ctx.RegisterFunctions once. The type arguments cannot be inferred:
//
//	ev := lang.NewEvaluator[*note.Note, note.Node](note.New())
func NewEvaluator[C Context[C, V], V Value[V]](ctx C, opts ...Option) *Evaluator[C, V] {
	ev := &Evaluator[C, V]{
		ctx:      ctx,
		registry: NewRegistry[C, V](),
		opts:     makeOptions(opts...),
		parse:    opts,
	}

	ctx.RegisterFunctions(ev.registry)

	ev.opts.logger.Trace("evaluator ready",
		slog.Int("functions", ev.registry.Len()))

	return ev
}

// Context returns the host context.
func (ev *Evaluator[C, V]) Context() C { return ev.ctx }

// Registry returns the function registry.
func (ev *Evaluator[C, V]) Registry() *Registry[C, V] { return ev.registry }

// EvaluateString parses and evaluates the document src.
func (ev *Evaluator[C, V]) EvaluateString(src string) ([]V, error) {
	return ev.EvaluateDocument(NewParser(src, ev.parse...).All())
}

// EvaluateDocument evaluates a sequence of top-level elements in order and
// returns the values they produce. The first error, from either the sequence
// or an evaluation, aborts the document and no values are returned.
func (ev *Evaluator[C, V]) EvaluateDocument(elements iter.Seq2[Element, error]) ([]V, error) {
	var values []V

	for el, err := range elements {
		if err != nil {
			return nil, err
		}

		v, err := ev.Evaluate(el)
		if err != nil {
			return nil, err
		}

		if v.Valid {
			values = append(values, v.Value)
		}
	}

	return values, nil
}

// Evaluate evaluates a single element.
func (ev *Evaluator[C, V]) Evaluate(el Element) (Optional[V], error) {
	var zero V

	switch e := el.(type) {
	case Text:
		v, ok := zero.FromText(e.Value)

		return Optional[V]{Value: v, Valid: ok}, nil

	case HardLinebreak:
		v, ok := zero.Linebreak()

		return Optional[V]{Value: v, Valid: ok}, nil

	case Block:
		values := make([]V, 0, len(e.Elements))

		for _, child := range e.Elements {
			v, err := ev.Evaluate(child)
			if err != nil {
				return None[V](), err
			}

			if v.Valid {
				values = append(values, v.Value)
			}
		}

		v, ok := zero.FromBlock(values)

		return Optional[V]{Value: v, Valid: ok}, nil

	case Function:
		return ev.call(e)

	default:
		return None[V](), ErrEvaluate.With(slog.String("reason", "invalid element"))
	}
}

func (ev *Evaluator[C, V]) call(fn Function) (Optional[V], error) {
	f, ok := ev.registry.Resolve(fn.Name)
	if !ok {
		return None[V](), ErrNotRegistered.At(fn.Span).
			With(slog.String("function", fn.Name))
	}

	ev.opts.logger.Trace("call",
		slog.String("function", fn.Name),
		slog.Int("attributes", len(fn.Attributes)),
		slog.Int("arguments", len(fn.Arguments)))

	v, err := f(ev, ev.ctx, NewAttrs(fn.Attributes...), fn.Arguments)
	if err != nil {
		return None[V](), annotate(err, fn)
	}

	return v, nil
}

// annotate attaches the name and span of the innermost failing call to err.
func annotate(err error, fn Function) error {
	e, ok := err.(*Error)
	if !ok {
		return (&Error{err: err}).At(fn.Span).With(slog.String("function", fn.Name))
	}

	if _, ok := e.Attr("function"); ok {
		return err
	}

	e = e.With(slog.String("function", fn.Name))
	if _, ok := e.Span(); !ok {
		e = e.At(fn.Span)
	}

	return e
}
