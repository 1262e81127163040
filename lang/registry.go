package lang

import (
	"iter"
	"maps"
	"slices"
)

// Callable is the uniform shape of a registered function. It receives the
// raw, unevaluated argument elements of the call and may evaluate them
// through ev.
//
// Most functions are written as ordinary typed Go functions and adapted with
// [Func0] through [Func5].
type Callable[C any, V Value[V]] func(
	ev *Evaluator[C, V],
	ctx C,
	attrs Attrs,
	args []Element,
) (Optional[V], error)

// Registry maps function names to functions.
type Registry[C any, V Value[V]] struct {
	funcs map[string]Callable[C, V]
}

// NewRegistry returns an empty registry.
func NewRegistry[C any, V Value[V]]() *Registry[C, V] {
	return &Registry[C, V]{funcs: make(map[string]Callable[C, V])}
}

// Register stores fn under name, replacing any function already registered
// under that name.
func (r *Registry[C, V]) Register(name string, fn Callable[C, V]) {
	r.funcs[name] = fn
}

// Resolve returns the function registered under name.
func (r *Registry[C, V]) Resolve(name string) (Callable[C, V], bool) {
	fn, ok := r.funcs[name]

	return fn, ok
}

// Len returns the number of registered functions.
func (r *Registry[C, V]) Len() int { return len(r.funcs) }

// Names returns an iterator over the registered names in sorted order.
func (r *Registry[C, V]) Names() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(r.funcs)))
}
