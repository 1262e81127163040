package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/HectorPeeters/noet/cli/cmd"
	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/pkg"
)

// CLI is the top-level command-line interface for noet.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Color   colorMode        `default:"auto" enum:"auto,always,never" help:"Colorize output."`
	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Tokens cmd.Tokens `cmd:"" help:"Print the token stream of a document"`
	Tree   cmd.Tree   `cmd:"" help:"Print the parse tree of a document"`
	Eval   cmd.Eval   `cmd:"" help:"Evaluate a document" default:"withargs"`
	Repl   cmd.Repl   `cmd:"" help:"Start the interactive shell"`
}

// Run executes the noet CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	vars := kong.Vars{
		"version":              pkg.Name + " " + pkg.Version,
		cmd.CacheIdentifier:    cacheDir(),
		cmd.MaxDepthIdentifier: strconv.Itoa(lang.DefaultMaxDepth),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure the logger before kong runs, wherever the flags appear.
	cli.Log.scan(args)
	colorAuto.apply()

	opts := []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		vars,
	}

	for _, l := range configLoaders {
		opts = append(opts, kong.Configuration(l.load, configPath(baseConfig+l.ext)))
	}

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Apply every parsed logging flag, including those without a
	// TextUnmarshaler.
	cli.Log.start(ctx)
	cli.Color.apply()

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
