package note

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"

	"github.com/HectorPeeters/noet/log"
)

// Names in markup may contain hyphens, so after
//
//	[#set unit-price | 4]
//
// the expression "unit-price * 2" must read the variable instead of
// subtracting price * 2 from unit. Hyphenated words are resolved in the
// source before expr parses it, so operator precedence never splits a name.
// The longest defined name wins; a word with no defined joined name stays a
// subtraction. Spaces around the minus sign always mean subtraction.

// hyphenNames rewrites the hyphenated names of one expression source.
type hyphenNames struct {
	env    map[string]any
	logger log.Logger

	// placeholders maps the identifiers substituted into the source back to
	// the hyphenated names they stand for.
	placeholders map[string]string
	src          string
}

func newHyphenNames(env map[string]any, logger log.Logger) *hyphenNames {
	return &hyphenNames{env: env, logger: logger, placeholders: map[string]string{}}
}

// rewrite returns src with defined hyphenated variables replaced by
// placeholder identifiers and hyphenated map keys turned into index
// expressions.
func (h *hyphenNames) rewrite(src string) string {
	h.src = src

	var (
		out   strings.Builder
		chain []string // names of the member chain being read
	)

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '"' || c == '\'' || c == '`':
			j := skipString(src, i)
			out.WriteString(src[i:j])
			i, chain = j, nil

		case isIdentStart(c):
			member := afterDot(out.String())
			parts, ends := identParts(src, i)

			scope := h.env
			if member {
				scope = lookupMap(h.env, chain)
			}

			k := longestDefined(scope, parts)
			if k < 2 {
				out.WriteString(parts[0])

				if member {
					chain = extend(chain, parts[0])
				} else {
					chain = []string{parts[0]}
				}

				i = ends[0]

				continue
			}

			name := strings.Join(parts[:k], "-")

			if member {
				// "cfg.log-level" reads the key "log-level" of cfg.
				s := strings.TrimRight(out.String(), " \t\n")
				s = strings.TrimSuffix(s, ".")

				if strings.HasSuffix(s, "?") {
					s += "."
				}

				out.Reset()
				out.WriteString(s)
				out.WriteString("[" + strconv.Quote(name) + "]")
				chain = extend(chain, name)
				h.trace(name, "member")
			} else {
				out.WriteString(h.placeholder(name))
				chain = []string{name}
				h.trace(name, "variable")
			}

			i = ends[k-1]

		case c >= '0' && c <= '9':
			j := i
			for j < len(src) && (isIdentChar(src[j]) || src[j] == '.' && !strings.HasPrefix(src[j:], "..")) {
				j++
			}

			out.WriteString(src[i:j])
			i, chain = j, nil

		default:
			out.WriteByte(c)
			i++

			switch {
			case c == '.' && i < len(src) && src[i] == '.':
				out.WriteByte('.')
				i++
				chain = nil

			case c == '.' || c == '?' || c == ' ' || c == '\t' || c == '\n':

			default:
				chain = nil
			}
		}
	}

	return out.String()
}

func (h *hyphenNames) placeholder(name string) string {
	for id, n := range h.placeholders {
		if n == name {
			return id
		}
	}

	for seq := len(h.placeholders); ; seq++ {
		id := "_hyphen" + strconv.Itoa(seq)
		if _, taken := h.env[id]; !taken && !strings.Contains(h.src, id) {
			h.placeholders[id] = name

			return id
		}
	}
}

// Visit implements [ast.Visitor]. It restores the hyphenated names behind
// the placeholders, which expr then resolves in the environment.
func (h *hyphenNames) Visit(node *ast.Node) {
	id, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}

	if name, ok := h.placeholders[id.Value]; ok {
		ast.Patch(node, &ast.IdentifierNode{Value: name})
	}
}

func (h *hyphenNames) trace(name, kind string) {
	h.logger.Trace("resolve hyphenated name",
		slog.String("name", name),
		slog.String("kind", kind))
}

// identParts splits the word at src[i:] into identifiers joined by single
// hyphens. ends[n] is the offset just past parts[n].
func identParts(src string, i int) (parts []string, ends []int) {
	for {
		j := i + 1
		for j < len(src) && isIdentChar(src[j]) {
			j++
		}

		parts = append(parts, src[i:j])
		ends = append(ends, j)

		if j+1 >= len(src) || src[j] != '-' || !isIdentStart(src[j+1]) {
			return parts, ends
		}

		i = j + 1
	}
}

// longestDefined returns how many leading parts form the longest name
// defined in scope, or 0.
func longestDefined(scope map[string]any, parts []string) int {
	if scope == nil {
		return 0
	}

	for k := len(parts); k >= 2; k-- {
		if _, ok := scope[strings.Join(parts[:k], "-")]; ok {
			return k
		}
	}

	return 0
}

// lookupMap returns the map found at path in env.
func lookupMap(env map[string]any, path []string) map[string]any {
	m := env

	for _, seg := range path {
		next, ok := m[seg].(map[string]any)
		if !ok {
			return nil
		}

		m = next
	}

	if len(path) == 0 {
		return nil
	}

	return m
}

// extend appends name to a member chain. A member of an unnamed operand
// such as "(x).y" has no chain.
func extend(chain []string, name string) []string {
	if chain == nil {
		return nil
	}

	return append(chain, name)
}

// afterDot reports whether out ends with a member access dot.
func afterDot(out string) bool {
	s := strings.TrimRight(out, " \t\n")

	return strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "..")
}

func skipString(src string, i int) int {
	quote := src[i]

	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			if quote != '`' {
				j++
			}
		case quote:
			return j + 1
		}
	}

	return len(src)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
