package repl

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/log"
	"github.com/HectorPeeters/noet/note"
)

// session is the note context shared by every line evaluated in the REPL.
// Lines that evaluate successfully are kept as the session document.
type session struct {
	logger  log.Logger
	environ []string
	opts    []lang.Option
	note    *note.Note
	ev      *lang.Evaluator[*note.Note, note.Node]
	lines   []string
}

func newSession(logger log.Logger, environ []string, opts ...lang.Option) *session {
	s := &session{logger: logger, environ: environ, opts: opts}
	s.reset()

	return s
}

// reset discards the document and starts over with a fresh note.
func (s *session) reset() {
	s.note = note.New(note.WithLogger(s.logger), note.WithEnviron(s.environ))
	s.ev = s.note.Evaluator(s.opts...)
	s.lines = nil
}

// eval evaluates src against a copy of the session note and keeps the copy
// only when the whole line succeeds, so the note always matches document.
func (s *session) eval(src string) ([]note.Node, error) {
	n := s.note.Clone()
	ev := n.Evaluator(s.opts...)

	nodes, err := ev.EvaluateString(src)
	if err != nil {
		return nil, err
	}

	s.note, s.ev = n, ev
	s.lines = append(s.lines, src)

	s.logger.Trace("session line",
		slog.Int("lines", len(s.lines)),
		slog.Int("nodes", len(nodes)))

	return nodes, nil
}

// replace evaluates src as a whole document in a fresh note and adopts it
// when it succeeds. On failure the session is left unchanged.
func (s *session) replace(src string) ([]note.Node, error) {
	n := note.New(note.WithLogger(s.logger), note.WithEnviron(s.environ))
	ev := n.Evaluator(s.opts...)

	nodes, err := ev.EvaluateString(src)
	if err != nil {
		return nil, err
	}

	s.note, s.ev = n, ev
	s.lines = nil

	if src = strings.TrimSpace(src); src != "" {
		s.lines = strings.Split(src, "\n\n")
	}

	return nodes, nil
}

// document returns the session lines as one document, each line its own
// paragraph.
func (s *session) document() string {
	if len(s.lines) == 0 {
		return ""
	}

	return strings.Join(s.lines, "\n\n") + "\n"
}

// functions returns the registered function names, sorted.
func (s *session) functions() []string {
	return slices.Sorted(s.ev.Registry().Names())
}

// describeFunctions lists each function with its usage line.
func (s *session) describeFunctions() string {
	var sb strings.Builder

	for _, name := range s.functions() {
		u, ok := note.Usage(name)
		if !ok {
			u = "[#" + name + " ...]"
		}

		fmt.Fprintf(&sb, "  %-6s %s\n", name, hintStyle.Render(u))
	}

	return sb.String()
}

// describeVars lists the note title and variables.
func (s *session) describeVars() string {
	var sb strings.Builder

	if s.note.Title != "" {
		fmt.Fprintf(&sb, "  %-6s %q\n", "title", s.note.Title)
	}

	for _, name := range slices.Sorted(maps.Keys(s.note.Vars)) {
		fmt.Fprintf(&sb, "  %-6s %s\n", name,
			hintStyle.Render(fmt.Sprintf("%v", s.note.Vars[name])))
	}

	if sb.Len() == 0 {
		return hintStyle.Render("  (no variables)") + "\n"
	}

	return sb.String()
}
