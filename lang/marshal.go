package lang

// ToNative converts an element to a tree of native Go maps and slices
// suitable for JSON, YAML or MessagePack encoding.
func ToNative(el Element) any {
	switch e := el.(type) {
	case Text:
		return map[string]any{
			"kind":  "text",
			"value": e.Value,
			"span":  spanNative(e.Span),
		}

	case HardLinebreak:
		return map[string]any{
			"kind": "linebreak",
			"span": spanNative(e.Span),
		}

	case Function:
		m := map[string]any{
			"kind": "function",
			"name": e.Name,
			"span": spanNative(e.Span),
		}

		if len(e.Attributes) > 0 {
			attrs := make([]any, len(e.Attributes))
			for i, a := range e.Attributes {
				attr := map[string]any{"key": a.Key}
				if a.HasValue {
					attr["value"] = a.Value
				}

				attrs[i] = attr
			}

			m["attributes"] = attrs
		}

		if len(e.Arguments) > 0 {
			m["arguments"] = TreeNative(e.Arguments)
		}

		return m

	case Block:
		return map[string]any{
			"kind":     "block",
			"elements": TreeNative(e.Elements),
		}

	default:
		return nil
	}
}

// TreeNative converts a list of elements with [ToNative].
func TreeNative(elements []Element) []any {
	out := make([]any, len(elements))
	for i, el := range elements {
		out[i] = ToNative(el)
	}

	return out
}

func spanNative(s Span) []int {
	return []int{s.Start, s.End}
}
