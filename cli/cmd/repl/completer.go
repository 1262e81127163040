package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/HectorPeeters/noet/note"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "funcs", "vars", "edit", "reset", "clear", "quit",
}

// isWordBoundary reports whether r ends a completable word. The sigils '#'
// and '@' belong to the word they start.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '[', ']', '(', ')', '|':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor and its byte boundaries within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// evalCandidates returns the completions for word in eval mode. Only
// function and attribute identifiers complete.
func evalCandidates(word string, functions []string) []string {
	var (
		sigil string
		names []string
	)

	switch {
	case strings.HasPrefix(word, "#"):
		sigil, names = "#", functions
	case strings.HasPrefix(word, "@"):
		sigil, names = "@", note.Attributes()
	default:
		return nil
	}

	out := make([]string, len(names))
	for i, n := range names {
		out[i] = sigil + n
	}

	return out
}

// computeMatches returns the fuzzy matches for the word at the cursor, best
// first, along with the word boundaries.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, start, end := wordBounds(m.input.Value(), m.input.Position())

	var candidates []string

	switch m.mode {
	case modeCtrl:
		if word == "" {
			return nil, start, end
		}

		candidates = ctrlCommands

	default:
		candidates = evalCandidates(word, m.session.functions())

		// A lone sigil lists everything it can start.
		if len(word) == 1 && len(candidates) > 0 {
			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, start, end
		}
	}

	if len(candidates) == 0 {
		return nil, start, end
	}

	return fuzzy.Find(word, candidates), start, end
}

// renderCandidateBar builds the single-line completion bar, cut off with an
// ellipsis at width. The selected candidate is highlighted while tabbing.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const (
		sep      = "  "
		ellipsis = "..."
	)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		w := runewidth.StringWidth(match.Str)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && used+w+len(ellipsis) > width {
			b.WriteString(sep)
			b.WriteString(hintStyle.Render(ellipsis))

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(renderCandidate(match, tabActive && i == suggIdx))

		used += w
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters in bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base := suggestionStyle
	if selected {
		base = selectedStyle
	}

	highlight := base.Bold(true)

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// truncate cuts the unstyled string s to fit width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}

	return runewidth.Truncate(s, width, "...")
}
