// Package cli implements the noet command line.
//
// # Usage
//
//	noet [flags] <command> [FILE ...]
//
// Commands read the concatenation of their files, or stdin when none (or
// "-") is given:
//
//	noet tokens --list note.noet    # print each token
//	noet tree -o yaml note.noet     # print the parse tree as YAML
//	noet eval -o json note.noet     # evaluate and print nodes and metadata
//	noet repl                       # interactive shell
//
// eval is the default command, so "noet note.noet" evaluates the file.
//
// # Configuration
//
// Flags may also be set in config.yaml, config.toml or config.json in the
// user configuration directory (for example ~/.config/noet). Nested keys
// join with hyphens, and underscores read as hyphens:
//
//	log:
//	  level: debug
//	color: never
//
// Command-line flags override configuration files.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, kitchen, none, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: human-oriented output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// It adds --pprof-mode (cpu, heap, allocs, ...) and --pprof-dir.
package cli
