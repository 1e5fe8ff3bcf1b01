package worker

import (
	"time"

	"github.com/okian/touchline/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithInterval makes the worker also reload every d. Zero disables it.
func WithInterval(d time.Duration) Option {
	return func(w *InMemoryWorker) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithReloadTimeout bounds a single reload.
func WithReloadTimeout(d time.Duration) Option {
	return func(w *InMemoryWorker) {
		if d > 0 {
			w.timeout = d
		}
	}
}
