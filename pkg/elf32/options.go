package elf32

import "github.com/go-kit/log"

// Option configures how a File is opened and decoded.
type Option func(*options)

type options struct {
	cfg     Config
	logger  log.Logger
	metrics *Metrics
}

func newOptions(opts []Option) options {
	o := options{
		cfg:    DefaultConfig(),
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg.Parallelism < 1 {
		o.cfg.Parallelism = 1
	}
	return o
}

// WithConfig replaces the decoder configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger warnings and debug messages are written to.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics enables decoder metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithParallelism sets the number of bodies read concurrently.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.cfg.Parallelism = n
	}
}
