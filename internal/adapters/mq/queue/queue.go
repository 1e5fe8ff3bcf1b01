// Package queue holds pending reload requests between the API and the
// reload worker.
package queue

import (
	"context"
	"sync"

	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/pkg/metrics"
)

const defaultCapacity = 16

// Request is the payload flowing through the queue.
type Request = model.ReloadRequest

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue returns ErrFull or ErrClosed when the request was not accepted.
	Enqueue(ctx context.Context, r Request) error

	// Dequeue returns the channel requests are delivered on. It is closed
	// when the queue is closed and drained.
	Dequeue() <-chan Request

	// Len returns the number of pending requests.
	Len() int

	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	requests chan Request
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a bounded queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.requests = make(chan Request, q.capacity)
	metrics.UpdateReloadQueueSize(0)
	return q
}

// Enqueue adds r without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Request) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordReloadRequest("rejected")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordReloadRequest("rejected")
		return err
	}

	select {
	case q.requests <- r:
		metrics.RecordReloadRequest("accepted")
		metrics.UpdateReloadQueueSize(len(q.requests))
		return nil
	default:
		metrics.RecordReloadRequest("rejected")
		metrics.RecordErrorByComponent("queue", "full")
		return ErrFull
	}
}

// Dequeue exposes the underlying channel.
func (q *InMemoryQueue) Dequeue() <-chan Request {
	return q.requests
}

// Len returns the number of pending requests.
func (q *InMemoryQueue) Len() int {
	n := len(q.requests)
	metrics.UpdateReloadQueueSize(n)
	return n
}

// Close stops accepting requests. Pending ones can still be drained.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.requests)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
