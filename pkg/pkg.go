package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of noet embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It appears in
	// help text and default config and cache paths.
	Name = "noet"
	// Description is a short summary used in help output.
	Description = "Embeddable markup language for notes"
)
