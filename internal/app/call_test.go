package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/boxshot/internal/adapters/mq/queue"
	"github.com/okian/boxshot/internal/adapters/mq/worker"
	"github.com/okian/boxshot/internal/domain/types"
	"github.com/okian/boxshot/pkg/logger"
)

// stalled returns a service whose loop never drains its queue.
func stalled(t *testing.T, capacity int) *Service {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}
	s := New()
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(capacity))
	s.loop = worker.NewLoop(s.queue)
	s.started = true
	return s
}

func TestCall_Backpressure(t *testing.T) {
	s := stalled(t, 1)
	if err := s.queue.TryEnqueue(queue.Job{Name: "filler"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.Shoot(context.Background(), types.Point{})
	if !errors.Is(err, ErrBackpressure) {
		t.Fatalf("expected ErrBackpressure, got %v", err)
	}
	if !errors.Is(err, queue.ErrFull) {
		t.Errorf("expected error to wrap queue.ErrFull, got %v", err)
	}
}

func TestCall_ContextCancelled(t *testing.T) {
	s := stalled(t, 4)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Snapshot(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestCall_QueueClosed(t *testing.T) {
	s := stalled(t, 4)
	_ = s.queue.Close()

	_, err := s.PlayAgain(context.Background())
	if !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}
