package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/note"
)

// callInfo describes the innermost call enclosing the cursor.
type callInfo struct {
	inCall   bool
	name     string
	argIndex int
	inAttr   bool // cursor is inside an attribute value
}

// callFrame tracks an open bracket while scanning the input.
type callFrame struct {
	name       string
	argIndex   int
	hasContent bool
	parens     int
}

// detectCall lexes input up to cursor and reports the innermost open call
// and which of its arguments the cursor is in. A separator before the first
// argument does not advance the index.
func detectCall(input string, cursor int) callInfo {
	cursor = min(max(cursor, 0), len(input))

	src := input[:cursor]

	var stack []*callFrame

	for tok := range lang.NewLexer(src).All() {
		var top *callFrame
		if len(stack) > 0 {
			top = stack[len(stack)-1]
		}

		if top != nil && top.parens > 0 {
			switch tok.Kind {
			case lang.TokenLeftParen:
				top.parens++
			case lang.TokenRightParen:
				top.parens--
			}

			continue
		}

		switch tok.Kind {
		case lang.TokenLeftBracket:
			if top != nil {
				top.hasContent = true
			}

			stack = append(stack, &callFrame{})

		case lang.TokenRightBracket:
			if top != nil {
				stack = stack[:len(stack)-1]
			}

		case lang.TokenFunctionIdentifier:
			if top != nil && top.name == "" && !top.hasContent {
				top.name = tok.Text(src)[1:]
			} else if top != nil {
				top.hasContent = true
			}

		case lang.TokenLeftParen:
			if top != nil {
				top.parens++
			}

		case lang.TokenArgumentSeparator:
			if top != nil && top.hasContent {
				top.argIndex++
			}

		case lang.TokenText:
			if top != nil {
				top.hasContent = true
			}
		}
	}

	if len(stack) == 0 {
		return callInfo{}
	}

	top := stack[len(stack)-1]
	if top.name == "" {
		return callInfo{}
	}

	return callInfo{
		inCall:   true,
		name:     top.name,
		argIndex: top.argIndex,
		inAttr:   top.parens > 0,
	}
}

// signature is a usage line split into its head (function and attributes)
// and its arguments. An inline first argument follows the head without a
// separator.
type signature struct {
	head     string
	args     []string
	inline   bool
	variadic bool
}

func parseUsage(usage string) signature {
	usage = strings.TrimSuffix(strings.TrimPrefix(usage, "["), "]")
	segs := strings.Split(usage, "|")

	var (
		sig   signature
		head  []string
		first []string
	)

	for _, w := range strings.Fields(segs[0]) {
		if strings.HasPrefix(w, "#") || strings.HasPrefix(w, "@") {
			head = append(head, w)
		} else {
			first = append(first, w)
		}
	}

	sig.head = strings.Join(head, " ")

	if len(first) > 0 {
		sig.inline = true
		sig.args = append(sig.args, strings.Join(first, " "))
	}

	for _, seg := range segs[1:] {
		a := strings.TrimSpace(seg)
		if s, ok := strings.CutSuffix(a, "..."); ok {
			a, sig.variadic = strings.TrimSpace(s), true
		}

		sig.args = append(sig.args, a)
	}

	return sig
}

// active returns the index of the argument at position i, or -1.
func (s signature) active(i int) int {
	switch {
	case i < len(s.args):
		return i
	case s.variadic && len(s.args) > 0:
		return len(s.args) - 1
	default:
		return -1
	}
}

var activeArgStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("3")).
	Bold(true)

// renderSignatureHint renders the usage of the called function with the
// argument at the cursor highlighted.
func renderSignatureHint(call callInfo) (string, bool) {
	usage, ok := note.Usage(call.name)
	if !ok {
		return "", false
	}

	sig := parseUsage(usage)

	active := -1
	if !call.inAttr {
		active = sig.active(call.argIndex)
	}

	var b strings.Builder

	b.WriteString(hintStyle.Render("[" + sig.head))

	for i, a := range sig.args {
		if i == 0 && sig.inline {
			b.WriteString(hintStyle.Render(" "))
		} else {
			b.WriteString(hintStyle.Render(" | "))
		}

		if i == active {
			b.WriteString(activeArgStyle.Render(a))
		} else {
			b.WriteString(hintStyle.Render(a))
		}
	}

	if sig.variadic {
		b.WriteString(hintStyle.Render(" ..."))
	}

	b.WriteString(hintStyle.Render("]"))

	return b.String(), true
}
