// Package worker runs reload requests against the service one at a time.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/touchline/internal/adapters/mq/queue"
	"github.com/okian/touchline/pkg/logger"
	"github.com/okian/touchline/pkg/metrics"
)

const defaultReloadTimeout = 2 * time.Minute

// Reloader rebuilds the snapshot.
type Reloader interface {
	Reload(ctx context.Context, reason string) error
}

// Queue defines how the worker receives requests.
type Queue interface {
	Dequeue() <-chan queue.Request
}

// Worker consumes reload requests.
type Worker interface {
	// Run blocks until ctx is canceled, Shutdown is called or the queue closes.
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker drains a queue and calls the Reloader. Requests that pile
// up while a reload is running are folded into the next one.
type InMemoryWorker struct {
	queue    Queue
	reloader Reloader
	name     string
	interval time.Duration
	timeout  time.Duration

	shutdown     chan struct{}
	done         chan struct{}
	shutdownOnce sync.Once

	logger logger.Logger
}

// NewInMemoryWorker creates a worker over q.
func NewInMemoryWorker(q Queue, r Reloader, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		reloader: r,
		name:     "reload-worker",
		timeout:  defaultReloadTimeout,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop. With an interval set it also reloads on a
// timer.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	var tick <-chan time.Time
	if w.interval > 0 {
		t := time.NewTicker(w.interval)
		defer t.Stop()
		tick = t.C
	}

	requests := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case <-tick:
			w.process(ctx, queue.Request{ID: "timer", Reason: "interval"}, 0)
		case req, ok := <-requests:
			if !ok {
				return
			}
			w.process(ctx, req, w.drain(requests))
		}
	}
}

// drain consumes whatever is already waiting and returns how many requests
// were folded into the current one.
func (w *InMemoryWorker) drain(requests <-chan queue.Request) int {
	n := 0
	for {
		select {
		case _, ok := <-requests:
			if !ok {
				return n
			}
			n++
			metrics.RecordReloadRequest("coalesced")
		default:
			metrics.UpdateReloadQueueSize(0)
			return n
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, req queue.Request, coalesced int) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	err := w.reloader.Reload(ctx, req.Reason)
	fields := []logger.Field{
		logger.String("request_id", req.ID),
		logger.String("reason", req.Reason),
		logger.Int("coalesced", coalesced),
		logger.Duration("took", time.Since(start)),
	}
	if err != nil {
		metrics.RecordErrorByComponent("worker", "reload_failed")
		w.logger.Error(ctx, "reload failed", append(fields, logger.Error(err))...)
		return
	}
	w.logger.Info(ctx, "reload finished", fields...)
}

// Shutdown stops the loop and waits for an in-flight reload to finish.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
