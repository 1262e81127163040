package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/fatih/color"

	"github.com/HectorPeeters/noet/lang"
	"github.com/HectorPeeters/noet/log"
)

// Tokens prints the token stream of a document.
type Tokens struct {
	Files []string `arg:"" help:"Source files or '-' for stdin" optional:"" type:"path"`
	List  bool     `       help:"Print each token instead of the count" short:"l"`

	stdio
}

var (
	spanColor  = color.New(color.FgHiBlack)
	kindColor  = color.New(color.FgBlue)
	textColor  = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed, color.Bold)
)

// Run executes the tokens command. A lexical error token makes the command
// fail after the stream is printed.
func (t *Tokens) Run(ctx context.Context) error {
	src, err := readSource(t.Files, t.stdin())
	if err != nil {
		return err
	}

	w := t.stdout()

	var (
		count int
		bad   *lang.Token
	)

	for tok := range lang.NewLexer(src).All() {
		count++

		if tok.Kind == lang.TokenError && bad == nil {
			bad = &tok
		}

		if !t.List {
			continue
		}

		kind := kindColor
		if tok.Kind == lang.TokenError {
			kind = errorColor
		}

		if _, err := fmt.Fprintf(w, "%s %s %s\n",
			spanColor.Sprintf("%-9s", tok.Span),
			kind.Sprintf("%-12s", tok.Kind),
			textColor.Sprint(strconv.Quote(tok.Text(src))),
		); err != nil {
			return err
		}
	}

	log.DebugContext(ctx, "tokens", slog.Int("count", count))

	if !t.List {
		if _, err := fmt.Fprintln(w, count); err != nil {
			return err
		}
	}

	if bad != nil {
		return lang.ErrUnexpectedToken.At(bad.Span).
			With(slog.String("token", bad.Text(src)))
	}

	return nil
}
