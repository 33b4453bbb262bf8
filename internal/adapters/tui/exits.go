package tui

import (
	"slices"
	"time"

	"github.com/okian/boxshot/internal/domain/types"
)

// exitTracker stands in for an exit animation. Each destroyed entity is
// held on screen for delay and then reported as finished.
type exitTracker struct {
	delay time.Duration
	due   map[uint64]time.Time
}

func newExitTracker(delay time.Duration) *exitTracker {
	return &exitTracker{delay: delay, due: make(map[uint64]time.Time)}
}

// observe schedules newly destroyed entities and forgets entities that are
// no longer in the snapshot.
func (t *exitTracker) observe(entities []types.Entity, now time.Time) {
	seen := make(map[uint64]struct{}, len(entities))
	for _, e := range entities {
		if !e.Destroyed {
			continue
		}
		seen[e.ID] = struct{}{}
		if _, ok := t.due[e.ID]; !ok {
			t.due[e.ID] = now.Add(t.delay)
		}
	}
	for id := range t.due {
		if _, ok := seen[id]; !ok {
			delete(t.due, id)
		}
	}
}

// ready returns the ids whose animation has finished, oldest id first.
// Returned ids are rescheduled so a failed report is retried.
func (t *exitTracker) ready(now time.Time) []uint64 {
	var ids []uint64
	for id, at := range t.due {
		if !now.Before(at) {
			ids = append(ids, id)
			t.due[id] = now.Add(t.delay)
		}
	}
	slices.Sort(ids)
	return ids
}

func (t *exitTracker) reset() {
	clear(t.due)
}
