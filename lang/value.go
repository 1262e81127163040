package lang

// Value is implemented by the host value type V, the output of evaluation.
// The methods are called on the zero value of V; each may report that
// nothing is produced.
type Value[V any] interface {
	// FromText converts a run of literal text.
	FromText(text string) (V, bool)
	// FromBlock combines the values of the elements of a [Block].
	FromBlock(values []V) (V, bool)
	// Linebreak returns the value of a [HardLinebreak].
	Linebreak() (V, bool)
}

// Context is implemented by the host context type C, which holds the state
// of one evaluation and declares the functions a document may call.
type Context[C any, V Value[V]] interface {
	// RegisterFunctions is called once by [NewEvaluator].
	RegisterFunctions(r *Registry[C, V])
}

// Optional holds a value that may be absent.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns a present optional value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns an absent optional value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Valid }

// Or returns the value if present and def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.Valid {
		return o.Value
	}

	return def
}

// Unit is the result type of functions that evaluate to nothing.
type Unit struct{}
