package repl

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/log"
	"github.com/HectorPeeters/noet/note"
)

func TestSession(t *testing.T) {
	s := newSession(log.Logger{}, []string{})

	if nodes, err := s.eval("[#set n | 2]"); err != nil || len(nodes) != 0 {
		t.Fatalf("set: %v, %v", nodes, err)
	}

	nodes, err := s.eval("[#calc n * 3]")
	if err != nil {
		t.Fatal(err)
	}

	if want := []note.Node{note.Text("6")}; !slices.EqualFunc(nodes, want, nodeEqual) {
		t.Errorf("calc = %v, want %v", nodes, want)
	}

	if _, err := s.eval("[#missing x]"); !errors.Is(err, lang.ErrNotRegistered) {
		t.Errorf("missing function: %v", err)
	}

	if got, want := s.document(), "[#set n | 2]\n\n[#calc n * 3]\n"; got != want {
		t.Errorf("document = %q, want %q", got, want)
	}

	if !strings.Contains(s.describeVars(), "n") {
		t.Errorf("describeVars lacks n: %q", s.describeVars())
	}

	if _, err := s.replace("[#b unclosed"); err == nil {
		t.Fatal("replace with invalid document succeeded")
	}

	if len(s.lines) != 2 {
		t.Errorf("failed replace changed the session: %v", s.lines)
	}

	if _, err := s.replace("[#title T]\n\n[#b x]\n"); err != nil {
		t.Fatal(err)
	}

	if s.note.Title != "T" || len(s.note.Vars) != 0 || len(s.lines) != 2 {
		t.Errorf("after replace: title %q vars %v lines %v",
			s.note.Title, s.note.Vars, s.lines)
	}

	s.reset()

	if s.note.Title != "" || s.document() != "" {
		t.Errorf("reset kept state: %q %q", s.note.Title, s.document())
	}

	if funcs := s.functions(); !slices.IsSorted(funcs) || !slices.Contains(funcs, "calc") {
		t.Errorf("functions() = %v", funcs)
	}
}

func TestSession_FailedLine(t *testing.T) {
	s := newSession(log.Logger{}, []string{})

	if _, err := s.eval("[#title Kept][#set x | 1]"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.eval("[#title Lost][#set y | 2] [#missing]"); !errors.Is(err, lang.ErrNotRegistered) {
		t.Fatalf("got %v, want ErrNotRegistered", err)
	}

	if s.note.Title != "Kept" {
		t.Errorf("title = %q after failed line", s.note.Title)
	}

	if _, ok := s.note.Vars["y"]; ok {
		t.Errorf("vars = %v after failed line", s.note.Vars)
	}

	if got, err := s.eval("[#calc x + 1]"); err != nil || len(got) != 1 || got[0].Text != "2" {
		t.Errorf("calc after failed line = %v, %v", got, err)
	}

	// Replaying the document reproduces the session state.
	replay := newSession(log.Logger{}, []string{})
	if _, err := replay.replace(s.document()); err != nil {
		t.Fatal(err)
	}

	if replay.note.Title != s.note.Title || len(replay.note.Vars) != len(s.note.Vars) {
		t.Errorf("replay = %q %v, session = %q %v",
			replay.note.Title, replay.note.Vars, s.note.Title, s.note.Vars)
	}
}

func nodeEqual(a, b note.Node) bool { return a.String() == b.String() }
