// Package queue carries jobs to the simulation loop.
//
// Every state change and every read of the simulation is a Job. The loop
// drains the queue one job at a time, so jobs never interleave.
package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/boxshot/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1024
)

// Job is one unit of work for the simulation loop. Name labels metrics and
// logs.
type Job struct {
	Name string
	Run  func(ctx context.Context)
}

// Queue is a bounded multi-producer, single-consumer job queue.
type Queue interface {
	// TryEnqueue adds j without blocking. It returns ErrFull when the queue
	// is at capacity and ErrClosed after Close.
	TryEnqueue(j Job) error

	// Enqueue adds j, waiting for room until ctx is done or the queue closes.
	Enqueue(ctx context.Context, j Job) error

	// Dequeue returns the channel jobs are delivered on. It is never closed;
	// consumers stop when Done is closed.
	Dequeue() <-chan Job

	// Done is closed by Close.
	Done() <-chan struct{}

	// Len returns the number of pending jobs.
	Len() int

	// Cap returns the queue capacity.
	Cap() int

	// Close stops accepting jobs. It is safe to call more than once.
	Close() error

	// IsClosed reports whether Close has been called.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	done     chan struct{}
	once     sync.Once
}

var _ Queue = (*InMemoryQueue)(nil)

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(q)
	}

	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

// TryEnqueue implements Queue.
func (q *InMemoryQueue) TryEnqueue(j Job) error {
	if q.IsClosed() {
		metrics.RecordQueueEnqueueError("closed")
		return fmt.Errorf("enqueue %s: %w", j.Name, ErrClosed)
	}

	select {
	case q.jobs <- j:
		metrics.UpdateQueueSize(len(q.jobs))
		return nil
	default:
		metrics.RecordQueueEnqueueError("full")
		return fmt.Errorf("enqueue %s: %w", j.Name, ErrFull)
	}
}

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error {
	if q.IsClosed() {
		metrics.RecordQueueEnqueueError("closed")
		return fmt.Errorf("enqueue %s: %w", j.Name, ErrClosed)
	}

	select {
	case q.jobs <- j:
		metrics.UpdateQueueSize(len(q.jobs))
		return nil
	case <-q.done:
		metrics.RecordQueueEnqueueError("closed")
		return fmt.Errorf("enqueue %s: %w", j.Name, ErrClosed)
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError("context_cancelled")
		return fmt.Errorf("enqueue %s: %w", j.Name, ctx.Err())
	}
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue() <-chan Job {
	return q.jobs
}

// Done implements Queue.
func (q *InMemoryQueue) Done() <-chan struct{} {
	return q.done
}

// Len implements Queue.
func (q *InMemoryQueue) Len() int {
	size := len(q.jobs)
	metrics.UpdateQueueSize(size)
	return size
}

// Cap implements Queue.
func (q *InMemoryQueue) Cap() int { return q.capacity }

// Close implements Queue.
func (q *InMemoryQueue) Close() error {
	q.once.Do(func() { close(q.done) })
	return nil
}

// IsClosed implements Queue.
func (q *InMemoryQueue) IsClosed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}
