package lang

import (
	"iter"
	"log/slog"
)

// Attrs is the read-only view of the attributes of one function call.
type Attrs struct {
	list []Attribute
}

// NewAttrs returns a view over list. The slice is not copied.
func NewAttrs(list ...Attribute) Attrs {
	return Attrs{list: list}
}

// Len returns the number of attributes.
func (a Attrs) Len() int { return len(a.list) }

// Has reports whether an attribute named key is present, whether or not it
// carries a value.
func (a Attrs) Has(key string) bool {
	for _, at := range a.list {
		if at.Key == key {
			return true
		}
	}

	return false
}

// Lookup returns the raw value of the first key/value attribute named key.
func (a Attrs) Lookup(key string) (string, bool) {
	for _, at := range a.list {
		if at.Key == key && at.HasValue {
			return at.Value, true
		}
	}

	return "", false
}

// All returns an iterator over the attributes in source order.
func (a Attrs) All() iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		for _, at := range a.list {
			if !yield(at) {
				return
			}
		}
	}
}

// AttrValue parses the value of the key/value attribute named key as T.
// A missing attribute yields the zero value and false without error. A value
// that does not parse as T yields an [ErrInvalidLiteral] error.
func AttrValue[T any](a Attrs, key string) (T, bool, error) {
	var v T

	s, ok := a.Lookup(key)
	if !ok {
		return v, false, nil
	}

	if err := parseLiteral(s, &v); err != nil {
		return v, false, WrapError(err).With(slog.String("attribute", key))
	}

	return v, true, nil
}
