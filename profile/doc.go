// Package profile provides optional runtime profiling for noet using
// [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag.
// Without it, [Profiler.Start] always returns a no-op and [Modes] is empty.
//
//	go build -tags pprof -o noet .
//
// # Modes
//
// allocs, block, clock, cpu, goroutine, heap, mem, mutex, thread and trace.
//
// # Usage
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithDir("/tmp/profiles"))
//	defer p.Start().Stop()
//
// The noet command exposes the same settings as flags:
//
//	noet --pprof-mode=cpu --pprof-dir=./profiles eval notes.noet
//
// The default output directory is the "pprof" subdirectory of the user
// cache directory, e.g. $XDG_CACHE_HOME/noet/pprof.
//
// # Analysis
//
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// Builds with the tag also register the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile
