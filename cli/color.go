package cli

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/HectorPeeters/noet/log"
)

// colorMode selects when output is colored.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// UnmarshalText implements [encoding.TextUnmarshaler]. Like the logging
// flags, it takes effect while kong parses.
func (m *colorMode) UnmarshalText(text []byte) error {
	*m = colorMode(text)
	m.apply()

	return nil
}

// enabled reports whether a stream with descriptor fd gets color.
func (m colorMode) enabled(fd uintptr) bool {
	switch m {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		_, noColor := os.LookupEnv("NO_COLOR")

		return !noColor && term.IsTerminal(int(fd))
	}
}

// apply configures command output on stdout and log output on stderr.
func (m colorMode) apply() {
	color.NoColor = !m.enabled(os.Stdout.Fd())
	log.Config(log.WithColor(m.enabled(os.Stderr.Fd())))
}
