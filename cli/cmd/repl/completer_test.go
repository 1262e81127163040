package repl

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/HectorPeeters/noet/log"
)

func testModel(t *testing.T) model {
	t.Helper()

	sess := newSession(log.Logger{}, []string{})
	history := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	return newModel(context.Background(), sess, history, log.Logger{})
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"function", "[#ta", 4, "#ta", 1, 4},
		{"attribute", "[#table @co", 11, "@co", 8, 11},
		{"after_separator", "[#list | it", 11, "it", 9, 11},
		{"after_paren", "[#code @lang(g", 14, "g", 13, 14},
		{"empty_at_boundary", "[#b ", 4, "", 4, 4},
		{"mid_word", "[#table]", 4, "#table", 1, 7},
		{"hyphenated", "[#my-func", 9, "#my-func", 1, 9},
		{"cursor_past_end", "ab", 10, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestEvalCandidates(t *testing.T) {
	funcs := []string{"b", "i"}

	if got := evalCandidates("#x", funcs); !slices.Equal(got, []string{"#b", "#i"}) {
		t.Errorf("functions: %v", got)
	}

	if got := evalCandidates("@", funcs); !slices.Equal(got, []string{"@cols", "@header", "@lang"}) {
		t.Errorf("attributes: %v", got)
	}

	if got := evalCandidates("word", funcs); got != nil {
		t.Errorf("plain word: %v", got)
	}
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"function", modeEval, "[#ta", []string{"#table"}},
		{"attribute", modeEval, "[#table @h", []string{"@header"}},
		{"lone_attribute_sigil", modeEval, "[#table @", []string{"@cols", "@header", "@lang"}},
		{"plain_text", modeEval, "hello", nil},
		{"command", modeCtrl, "fu", []string{"funcs"}},
		{"empty_command", modeCtrl, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t)
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, _ := m.computeMatches()

			var got []string
			for _, match := range matches {
				got = append(got, match.Str)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCycle(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("[#table @")
	m.input.SetCursor(9)
	refreshMatches(&m, false)

	m, _ = m.cycle(1)
	if got := m.input.Value(); got != "[#table @cols" {
		t.Fatalf("first candidate: %q", got)
	}

	m, _ = m.cycle(1)
	if got := m.input.Value(); got != "[#table @header" {
		t.Fatalf("second candidate: %q", got)
	}

	m, _ = m.cycle(-1)
	m, _ = m.cycle(-1)
	if got := m.input.Value(); got != "[#table @lang" {
		t.Fatalf("wrapped candidate: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}

	if got := truncate("a longer hint line", 8); got != "a lon..." {
		t.Errorf("truncate long = %q", got)
	}
}
