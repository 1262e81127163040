package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/klauspost/readahead"

	"github.com/HectorPeeters/noet/lang"
)

// Command errors.
var (
	ErrCommand = lang.NewError("command failed")
	ErrSource  = ErrCommand.Kind("cannot read source")
	ErrFormat  = ErrCommand.Kind("unsupported output format")

	ErrNotTerminal = ErrCommand.Kind("standard input is not a terminal")
)

// stdinSource names standard input on the command line.
const stdinSource = "-"

// stdio holds the streams of a command. The zero value uses the process
// streams.
type stdio struct {
	in  io.Reader
	out io.Writer
}

func (s stdio) stdin() io.Reader {
	if s.in == nil {
		return os.Stdin
	}

	return s.in
}

func (s stdio) stdout() io.Writer {
	if s.out == nil {
		return os.Stdout
	}

	return s.out
}

// fileKey identifies a file by device and inode, so one file named through
// different paths or symlinks is read once.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	if info == nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// readSource returns the concatenated content of files. No files, or "-",
// reads stdin. Each file is read once, and stdin is always read last.
func readSource(files []string, stdin io.Reader) (string, error) {
	if len(files) == 0 {
		files = []string{stdinSource}
	}

	var (
		readers  []io.Reader
		closers  []io.Closer
		useStdin bool
	)

	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	seen := make(map[fileKey]struct{})

	// A file redirected to stdin is read as stdin.
	if useStdin = slices.Contains(files, stdinSource); useStdin {
		if f, ok := stdin.(*os.File); ok {
			if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
				if key, ok := makeFileKey(info); ok {
					seen[key] = struct{}{}
				}
			}
		}
	}

	for _, name := range files {
		if name == stdinSource {
			continue
		}

		f, info, err := openFile(name)
		if err != nil {
			return "", ErrSource.Wrap(err).With(slog.String("file", name))
		}

		if key, ok := makeFileKey(info); ok {
			if _, dup := seen[key]; dup {
				f.Close()

				continue
			}

			seen[key] = struct{}{}
		}

		readers = append(readers, f)
		closers = append(closers, f)
	}

	if useStdin {
		readers = append(readers, stdin)
	}

	ra := readahead.NewReader(io.MultiReader(readers...))
	defer ra.Close()

	var sb strings.Builder
	if _, err := io.Copy(&sb, ra); err != nil {
		return "", ErrSource.Wrap(err)
	}

	return sb.String(), nil
}

// openFile opens the file at path after resolving symlinks.
func openFile(path string) (*os.File, os.FileInfo, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, nil, err
	}

	if info.IsDir() {
		f.Close()

		return nil, nil, &os.PathError{Op: "read", Path: path, Err: syscall.EISDIR}
	}

	return f, info, nil
}
