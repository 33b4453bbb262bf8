// Package service runs the arcade simulation behind a small, goroutine-safe
// API used by the HTTP adapter and the terminal client.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/boxshot/internal/adapters/clock"
	"github.com/okian/boxshot/internal/adapters/mq/queue"
	"github.com/okian/boxshot/internal/adapters/mq/worker"
	"github.com/okian/boxshot/internal/adapters/repository"
	"github.com/okian/boxshot/internal/config"
	"github.com/okian/boxshot/internal/domain/game"
	"github.com/okian/boxshot/internal/domain/model"
	"github.com/okian/boxshot/internal/domain/spawn"
	"github.com/okian/boxshot/internal/domain/types"
	"github.com/okian/boxshot/pkg/logger"
)

// Job names, also used as metric labels.
const (
	jobSpawn    = "spawn"
	jobMotion   = "motion"
	jobDecay    = "decay"
	jobShoot    = "shoot"
	jobExit     = "exit"
	jobReset    = "play_again"
	jobSnapshot = "snapshot"
	jobStats    = "stats"

	loopShutdownTimeout = 5 * time.Second
)

// Service owns one game and the goroutine that runs it. Every public method
// is safe for concurrent use; game state is only touched by the loop.
type Service struct {
	mu sync.RWMutex

	cfg *config.Config

	queue *queue.InMemoryQueue
	loop  *worker.Loop
	sched *clock.Scheduler
	game  *game.Game

	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service with the default configuration.
func New(opts ...Option) *Service {
	s := &Service{cfg: config.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the game and starts the loop and the periodic tasks.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting arcade service...")

	seed := s.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	vp := model.Viewport{Width: s.cfg.ViewportWidth, Height: s.cfg.ViewportHeight}

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.cfg.QueueSize))
	s.loop = worker.NewLoop(s.queue, worker.WithName("loop"), worker.WithLogger(s.logger.Named("loop")))
	s.sched = clock.NewScheduler(s.queue, clock.WithLogger(s.logger.Named("clock")))
	s.game = game.New(
		repository.NewInMemoryStore(repository.WithMaxEntities(s.cfg.MaxEntities)),
		spawn.NewSampler(vp, spawn.NewSource(seed)),
		s.sched,
		game.WithViewport(vp),
		game.WithShotCost(s.cfg.ShotCost),
		game.WithDecayAmount(s.cfg.DecayAmount),
		game.WithInitialEnergy(s.cfg.InitialEnergy),
		game.WithEnergyCeiling(s.cfg.EnergyCeiling),
		game.WithMaxCallouts(s.cfg.MaxCallouts),
		game.WithShotMarkerTTL(s.cfg.ShotMarkerTTL()),
		game.WithCalloutTTL(s.cfg.CalloutTTL()),
		game.WithLogger(s.logger.Named("game")),
	)

	g := s.game
	s.sched.Every(jobSpawn, s.cfg.SpawnInterval(), func(ctx context.Context) { g.Spawn(ctx) })
	s.sched.Every(jobMotion, s.cfg.MotionInterval(), g.TickMotion)
	s.sched.Every(jobDecay, s.cfg.DecayInterval(), g.Decay)

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.loop.Run(loopCtx)
	s.sched.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "arcade service started",
		logger.Int("queueSize", s.cfg.QueueSize),
		logger.Uint64("seed", seed),
		logger.Float64("width", vp.Width),
		logger.Float64("height", vp.Height),
	)
	return nil
}

// Stop halts the periodic tasks and the loop. Calls waiting on the loop
// return ErrNotStarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping arcade service...")

	s.sched.Stop()
	_ = s.queue.Close()

	shutdownCtx, cancel := context.WithTimeout(ctx, loopShutdownTimeout)
	defer cancel()
	if err := s.loop.Shutdown(shutdownCtx); err != nil && !errors.Is(err, worker.ErrStopped) {
		s.logger.Warn(ctx, "loop shutdown", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "arcade service stopped")
}

// Snapshot returns the current state for rendering.
func (s *Service) Snapshot(ctx context.Context) (types.Snapshot, error) {
	return call(ctx, s, jobSnapshot, func(_ context.Context, g *game.Game) types.Snapshot {
		return g.Snapshot()
	})
}

// Shoot resolves a click at p. A shot taken after energy ran out is not an
// error; the outcome reports Accepted=false.
func (s *Service) Shoot(ctx context.Context, p types.Point) (types.ShotOutcome, error) {
	return call(ctx, s, jobShoot, func(ctx context.Context, g *game.Game) types.ShotOutcome {
		return g.Shoot(ctx, model.Point{X: p.X, Y: p.Y})
	})
}

// ExitAnimationComplete removes a destroyed entity after its exit animation.
// It reports false for unknown or live entities.
func (s *Service) ExitAnimationComplete(ctx context.Context, id uint64) (bool, error) {
	return call(ctx, s, jobExit, func(ctx context.Context, g *game.Game) bool {
		return g.ExitAnimationComplete(ctx, id)
	})
}

// PlayAgain starts a new round and returns its first snapshot.
func (s *Service) PlayAgain(ctx context.Context) (types.Snapshot, error) {
	return call(ctx, s, jobReset, func(ctx context.Context, g *game.Game) types.Snapshot {
		return g.PlayAgain(ctx)
	})
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	started := s.started
	stats := map[string]interface{}{
		"started":   started,
		"queueSize": s.cfg.QueueSize,
	}
	if started {
		stats["queueLength"] = s.queue.Len()
		stats["droppedTicks"] = s.sched.Dropped()
		stats["pendingTimers"] = s.sched.Pending()
	}
	s.mu.RUnlock()

	if !started {
		return stats
	}
	gs, err := call(ctx, s, jobStats, func(_ context.Context, g *game.Game) game.Stats {
		return g.Stats()
	})
	if err != nil {
		stats["error"] = err.Error()
		return stats
	}
	stats["game"] = gs
	return stats
}

// call runs fn on the loop and waits for its result.
func call[T any](ctx context.Context, s *Service, name string, fn func(ctx context.Context, g *game.Game) T) (T, error) {
	var zero T

	s.mu.RLock()
	started, q, loop, g := s.started, s.queue, s.loop, s.game
	s.mu.RUnlock()
	if !started {
		return zero, ErrNotStarted
	}

	reply := make(chan T, 1)
	err := q.TryEnqueue(queue.Job{Name: name, Run: func(ctx context.Context) {
		reply <- fn(ctx, g)
	}})
	switch {
	case errors.Is(err, queue.ErrFull):
		return zero, fmt.Errorf("%s: %w", name, ErrBackpressure)
	case err != nil:
		return zero, fmt.Errorf("%s: %w", name, ErrNotStarted)
	}

	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("%s: %w", name, ctx.Err())
	case <-loop.Done():
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, fmt.Errorf("%s: %w", name, ErrNotStarted)
		}
	}
}
