package lang

import "github.com/HectorPeeters/noet/log"

// DefaultMaxDepth is the default maximum nesting depth of function calls.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// options holds the configuration shared by [Parser] and [Evaluator].
type options struct {
	logger      log.Logger
	maxDepth    int
	strictArity bool
}

// Option configures parsing or evaluation behavior.
type Option func(*options)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth sets the maximum nesting depth of function calls inside
// arguments.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithStrictArity makes a call with more positional arguments than the
// function binds fail with [ErrTooManyArguments]. By default surplus
// arguments are ignored.
func WithStrictArity(strict bool) Option {
	return func(o *options) {
		o.strictArity = strict
	}
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
