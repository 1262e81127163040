// Package cmd implements the noet subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable holding the cache directory.
	CacheIdentifier = "cache"

	// MaxDepthIdentifier is the kong variable holding the default maximum
	// call nesting depth.
	MaxDepthIdentifier = "maxDepth"
)
