package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/HectorPeeters/noet/log"
	"github.com/HectorPeeters/noet/note"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It writes the session document
// to a temporary file, opens it in the user's editor and evaluates the
// result as a new document. On error the user may edit again; declining
// leaves the session unchanged.
type editCommand struct {
	ctx     context.Context
	session *session
	logger  log.Logger
	nodes   []note.Node
	changed bool
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

func (c *editCommand) Run() error {
	f, err := os.CreateTemp("", "noet-repl-*.noet")
	if err != nil {
		return err
	}

	path := f.Name()

	defer os.Remove(path)

	_, err = f.WriteString(c.session.document())
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	for {
		if err := runEditor(c.ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		src := string(data)
		if strings.TrimSpace(src) == "" {
			return nil
		}

		nodes, evalErr := c.session.replace(src)

		c.logger.TraceContext(c.ctx, "editor evaluate attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", evalErr == nil))

		if evalErr == nil {
			c.nodes, c.changed = nodes, true

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", evalErr)
		fmt.Fprint(c.stdout, "Edit again? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor opens path in $EDITOR and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	// $EDITOR may carry flags, as in "code --wait".
	args := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
