package lang

// Element is a node of the parse tree: one of [Text], [HardLinebreak],
// [Function] or [Block].
type Element interface {
	// Extent returns the source range covered by the element.
	Extent() Span

	element()
}

// Text is a run of literal text. Value is a substring of the source.
type Text struct {
	Value string
	Span  Span
}

// HardLinebreak is a paragraph break (two consecutive newlines).
type HardLinebreak struct {
	Span Span
}

// Function is a call such as [#name @key(value) arg | arg].
type Function struct {
	Name       string
	Attributes []Attribute
	Arguments  []Element
	Span       Span
}

// Block groups the elements of one call argument. A Block always holds at
// least two elements.
type Block struct {
	Elements []Element
}

func (e Text) Extent() Span          { return e.Span }
func (e HardLinebreak) Extent() Span { return e.Span }
func (e Function) Extent() Span      { return e.Span }

func (e Block) Extent() Span {
	if len(e.Elements) == 0 {
		return Span{}
	}

	s := e.Elements[0].Extent()
	for _, el := range e.Elements[1:] {
		s = s.Cover(el.Extent())
	}

	return s
}

func (Text) element()          {}
func (HardLinebreak) element() {}
func (Function) element()      {}
func (Block) element()         {}

// Attribute is a named modifier of a [Function]. A flag attribute (@key) has
// no value; a key/value attribute (@key(value)) carries the raw text between
// its parentheses.
type Attribute struct {
	Key      string
	Value    string
	HasValue bool
}

// NewFlag returns a flag attribute.
func NewFlag(key string) Attribute {
	return Attribute{Key: key}
}

// NewValue returns a key/value attribute.
func NewValue(key, value string) Attribute {
	return Attribute{Key: key, Value: value, HasValue: true}
}

// IsFlag reports whether a is a flag attribute.
func (a Attribute) IsFlag() bool { return !a.HasValue }

func (a Attribute) String() string {
	if a.HasValue {
		return "@" + a.Key + "(" + a.Value + ")"
	}

	return "@" + a.Key
}

// elementKind names the variant of el for diagnostics.
func elementKind(el Element) string {
	switch el.(type) {
	case Text:
		return "text"
	case HardLinebreak:
		return "linebreak"
	case Function:
		return "function"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}
