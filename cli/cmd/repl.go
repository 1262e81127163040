package cmd

import (
	"context"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/HectorPeeters/noet/cli/cmd/repl"
	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/log"
)

// Repl starts the interactive shell.
type Repl struct {
	Files    []string `arg:"" help:"Documents to load before the first prompt" optional:"" type:"path"`
	Strict   bool     `       help:"Reject surplus function arguments"`
	MaxDepth int      `       help:"Maximum call nesting depth" default:"${maxDepth}"`
	CacheDir string   `       help:"Directory of the history file" default:"${cache}" hidden:"" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}

	cfg := repl.Config{
		CacheDir: r.CacheDir,
		Logger:   log.Default(),
		Options: []lang.Option{
			lang.WithLogger(log.Default()),
			lang.WithMaxDepth(r.MaxDepth),
			lang.WithStrictArity(r.Strict),
		},
	}

	if len(r.Files) > 0 {
		src, err := readSource(r.Files, os.Stdin)
		if err != nil {
			return err
		}

		cfg.Source = strings.NewReader(src)
	}

	return repl.Run(ctx, cfg)
}
