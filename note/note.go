package note

import (
	"log/slog"
	"maps"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/log"
)

// Errors returned by the note functions.
var (
	ErrExpression   = lang.ErrEvaluate.Kind("expression failed")
	ErrReservedName = lang.ErrEvaluate.Kind("reserved variable name")
	ErrInvalidTable = lang.ErrEvaluate.Kind("invalid table")
)

// reserved names are always present in the expression environment.
var reserved = []string{"env", "paths", "title"}

// Note is the evaluation context of a note document. Functions in the
// document mutate it while the document is evaluated.
type Note struct {
	Title string
	Vars  map[string]any

	environ map[string]string
	logger  log.Logger
}

// Option configures a [Note].
type Option func(*Note)

// WithLogger sets the logger used for expression tracing.
func WithLogger(logger log.Logger) Option {
	return func(n *Note) { n.logger = logger }
}

// WithEnviron sets the "KEY=VALUE" list visible to env() in expressions.
// The process environment is used when no list is given.
func WithEnviron(environ []string) Option {
	return func(n *Note) { n.environ = buildEnviron(environ) }
}

// New returns an empty note.
func New(opts ...Option) *Note {
	n := &Note{Vars: map[string]any{}}

	for _, opt := range opts {
		opt(n)
	}

	if n.environ == nil {
		n.environ = buildEnviron(nil)
	}

	return n
}

// Clone returns a copy of n whose title and variables can change without
// affecting n. Variable values are shared.
func (n *Note) Clone() *Note {
	c := *n
	c.Vars = maps.Clone(n.Vars)

	return &c
}

// Evaluator returns an evaluator over n with the note functions
// registered.
func (n *Note) Evaluator(opts ...lang.Option) *lang.Evaluator[*Note, Node] {
	return lang.NewEvaluator[*Note, Node](n, opts...)
}

// Meta returns the document metadata collected during evaluation.
func (n *Note) Meta() map[string]any {
	meta := map[string]any{"title": n.Title}
	if len(n.Vars) > 0 {
		meta["vars"] = maps.Clone(n.Vars)
	}

	return meta
}

// RegisterFunctions implements lang.Context.
func (n *Note) RegisterFunctions(r *lang.Registry[*Note, Node]) {
	lang.Register1(r, "title", title)
	lang.Register1(r, "b", bold)
	lang.Register1(r, "i", italic)
	lang.Register1(r, "list", list)
	lang.Register3(r, "table", table)
	lang.Register2(r, "code", code)
	lang.Register2(r, "link", link)
	lang.Register2(r, "set", set)
	lang.Register1(r, "calc", calc)
}

// eval compiles and runs an expr program against the note variables.
func (n *Note) eval(source string) (any, error) {
	env := n.exprEnv()
	names := newHyphenNames(env, n.logger)

	program, err := expr.Compile(names.rewrite(source),
		expr.Env(env),
		expr.Patch(names),
	)
	if err != nil {
		return nil, ErrExpression.Wrap(err).With(slog.String("source", source))
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrExpression.Wrap(err).With(slog.String("source", source))
	}

	n.logger.Debug("expression evaluated",
		slog.String("source", source),
		slog.Any("result", result),
	)

	return result, nil
}

func (n *Note) exprEnv() map[string]any {
	env := make(map[string]any, len(n.Vars)+len(reserved))
	maps.Copy(env, n.Vars)

	env["title"] = n.Title
	env["env"] = func(key string) string { return n.environ[key] }
	env["paths"] = pathList

	return env
}

// buildEnviron converts a "KEY=VALUE" list to a map.
// If environ is nil, os.Environ() is used.
func buildEnviron(environ []string) map[string]string {
	if environ == nil {
		environ = os.Environ()
	}

	result := make(map[string]string, len(environ))

	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok {
			result[key] = value
		}
	}

	return result
}
