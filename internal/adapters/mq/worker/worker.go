// Package worker runs the single goroutine that owns the simulation.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/boxshot/internal/adapters/mq/queue"
	"github.com/okian/boxshot/pkg/logger"
	"github.com/okian/boxshot/pkg/metrics"
)

// ErrStopped is returned by Shutdown when the loop was already stopped.
var ErrStopped = errors.New("worker stopped")

// Source is where the loop reads jobs from.
type Source interface {
	Dequeue() <-chan queue.Job
	Done() <-chan struct{}
}

// Loop executes jobs one at a time in arrival order. It is the only
// goroutine allowed to touch simulation state.
type Loop struct {
	source Source
	name   string

	shutdown chan struct{}
	done     chan struct{}
	once     sync.Once

	logger logger.Logger
}

// NewLoop creates a loop reading from source.
func NewLoop(source Source, opts ...Option) *Loop {
	l := &Loop{
		source:   source,
		name:     "loop",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = logger.Get().Named(l.name)
	}

	return l
}

// Run executes jobs until ctx is cancelled, Shutdown is called or the source
// closes. It blocks; callers normally start it with go.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	jobs := l.source.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.shutdown:
			return
		case <-l.source.Done():
			return
		case job := <-jobs:
			l.execute(ctx, job)
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Shutdown stops the loop and waits for the running job to finish.
func (l *Loop) Shutdown(ctx context.Context) error {
	stopped := true
	l.once.Do(func() {
		stopped = false
		close(l.shutdown)
	})
	if stopped {
		return ErrStopped
	}

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		l.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// execute runs one job. A panicking job is logged and does not stop the loop.
func (l *Loop) execute(ctx context.Context, job queue.Job) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error(ctx, "job panicked",
				logger.String("job", job.Name),
				logger.Any("panic", r),
			)
		}
		metrics.RecordJobLatency(job.Name, float64(time.Since(start).Microseconds())/1000)
	}()

	if job.Run == nil {
		return
	}
	job.Run(ctx)
}
