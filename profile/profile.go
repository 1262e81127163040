package profile

// Tag is the build tag that enables profiling, also used as the name of the
// default output subdirectory.
const Tag = "pprof"

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Option configures a [Profiler].
type Option func(*Profiler)

// New returns a profiler configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// WithMode sets the profiling mode; see [Modes].
func WithMode(mode string) Option {
	return func(p *Profiler) { p.Mode = mode }
}

// WithDir sets the directory profile data is written to.
func WithDir(dir string) Option {
	return func(p *Profiler) { p.Dir = dir }
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(p *Profiler) { p.Quiet = quiet }
}

// Start starts profiling. It returns a no-op [Stopper] when the mode is
// empty or unknown, or when built without the pprof tag.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
