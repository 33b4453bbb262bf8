package service

import (
	"fmt"

	"github.com/okian/boxshot/internal/adapters/mq/queue"
)

// Sentinel kinds for service errors. Both wrap the queue error they stem
// from, so callers may test for either.
var (
	ErrNotStarted   = fmt.Errorf("service not started: %w", queue.ErrClosed)
	ErrBackpressure = fmt.Errorf("service busy: %w", queue.ErrFull)
)
