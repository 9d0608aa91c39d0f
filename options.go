package rexfs

import (
	"log/slog"
)

// Options holds the ambient configuration shared by all backends.
// Backends obtain it through ApplyOptions.
type Options struct {
	Logger  *Logger
	Metrics MetricsCollector
}

// Option configures a backend or decorator.
type Option func(*Options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := rexfs.NewJSONLogger(slog.LevelDebug)
//	fsys := memfs.New(memfs.NewRegistry(), rexfs.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *Options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.Logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *Options) {
		o.Logger = NewTextLogger(level)
	}
}

// WithMetrics configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetrics(mc MetricsCollector) Option {
	return func(o *Options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.Metrics = mc
	}
}

// ApplyOptions resolves optFns on top of the defaults (no logging, no metrics).
func ApplyOptions(optFns []Option) Options {
	o := Options{
		Logger:  NoopLogger(),
		Metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
