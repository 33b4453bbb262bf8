// Package clock turns wall-clock time into jobs for the simulation loop.
//
// Periodic tasks each own a ticker and post a job per tick. A tick that finds
// the queue full is dropped and counted; it is never queued late. One-shot
// timers wait for room instead, so an expiry is never lost while the
// scheduler runs.
package clock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/boxshot/internal/adapters/mq/queue"
	"github.com/okian/boxshot/pkg/logger"
	"github.com/okian/boxshot/pkg/metrics"
)

// Enqueuer is the part of the job queue the scheduler posts to.
type Enqueuer interface {
	TryEnqueue(j queue.Job) error
	Enqueue(ctx context.Context, j queue.Job) error
}

type task struct {
	name  string
	every time.Duration
	run   func(ctx context.Context)
}

// Scheduler owns every timer of the simulation. Periodic tasks start and
// stop together.
type Scheduler struct {
	q     Enqueuer
	tasks []task

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	timers  map[*time.Timer]struct{}
	started bool
	stopped bool
	wg      sync.WaitGroup

	dropped atomic.Uint64

	logger logger.Logger
}

// NewScheduler creates a scheduler posting to q.
func NewScheduler(q Enqueuer, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		q:      q,
		ctx:    ctx,
		cancel: cancel,
		timers: make(map[*time.Timer]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("clock")
	}

	return s
}

// Every registers a periodic task. Tasks registered after Start are ignored.
func (s *Scheduler) Every(name string, every time.Duration, run func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || every <= 0 {
		return
	}
	s.tasks = append(s.tasks, task{name: name, every: every, run: run})
}

// Start launches every periodic task. Calling it again is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true

	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.runTask(t)
	}

	s.logger.Info(ctx, "scheduler started", logger.Int("tasks", len(s.tasks)))
}

func (s *Scheduler) runTask(t task) {
	defer s.wg.Done()

	ticker := time.NewTicker(t.every)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			err := s.q.TryEnqueue(queue.Job{Name: t.name, Run: t.run})
			switch {
			case err == nil:
			case errors.Is(err, queue.ErrClosed):
				return
			default:
				s.dropped.Add(1)
				metrics.RecordDroppedTick(t.name)
				s.logger.Debug(s.ctx, "tick dropped", logger.String("task", t.name), logger.Error(err))
			}
		}
	}
}

// AfterFunc posts fn to the queue once d has elapsed. Each call gets its own
// timer. Timers still pending at Stop never fire.
func (s *Scheduler) AfterFunc(d time.Duration, name string, fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, t)
		ctx := s.ctx
		s.mu.Unlock()

		if err := s.q.Enqueue(ctx, queue.Job{Name: name, Run: fn}); err != nil {
			s.logger.Debug(ctx, "timer not delivered", logger.String("timer", name), logger.Error(err))
		}
	})
	s.timers[t] = struct{}{}
}

// Pending returns the number of one-shot timers that have not fired yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Dropped returns how many periodic ticks were dropped on a full queue.
func (s *Scheduler) Dropped() uint64 { return s.dropped.Load() }

// Stop halts periodic tasks and cancels pending timers, then waits for the
// task goroutines to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.cancel()
	for t := range s.timers {
		t.Stop()
		delete(s.timers, t)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "scheduler stopped", logger.Uint64("dropped_ticks", s.Dropped()))
}
