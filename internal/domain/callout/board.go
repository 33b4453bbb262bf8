// Package callout keeps the transient score callouts produced by hits.
//
// Callouts form a bounded FIFO rather than a single slot, so simultaneous
// hits and overlapping expiry timers cannot overwrite each other. When the
// board is full the oldest callout is evicted.
package callout

import (
	"github.com/okian/boxshot/internal/domain/model"
)

// Default board configuration constants.
const (
	defaultMaxSize = 8
)

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithMaxSize sets how many callouts may be visible at once.
func WithMaxSize(maxSize int) Option {
	return func(b *Board) {
		if maxSize > 0 {
			b.maxSize = maxSize
		}
	}
}

// Board holds the visible callouts, oldest first. IDs are never reused, even
// across Reset, so an expiry scheduled before a reset cannot remove a
// callout created after it.
type Board struct {
	items   []model.Callout
	maxSize int
	nextID  uint64
}

// NewBoard creates an empty board.
func NewBoard(opts ...Option) *Board {
	b := &Board{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(b)
	}
	b.items = make([]model.Callout, 0, b.maxSize)
	return b
}

// Push assigns c an ID and appends it. It returns the stored callout and,
// when the board was full, the ID of the evicted one.
func (b *Board) Push(c model.Callout) (stored model.Callout, evicted uint64, ok bool) {
	if len(b.items) >= b.maxSize {
		evicted, ok = b.items[0].ID, true
		copy(b.items, b.items[1:])
		b.items = b.items[:len(b.items)-1]
	}
	b.nextID++
	c.ID = b.nextID
	b.items = append(b.items, c)
	return c, evicted, ok
}

// Remove deletes the callout with id. It reports false when the callout is
// already gone (expired, evicted or reset).
func (b *Board) Remove(id uint64) bool {
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Latest returns the most recently pushed visible callout.
func (b *Board) Latest() (model.Callout, bool) {
	if len(b.items) == 0 {
		return model.Callout{}, false
	}
	return b.items[len(b.items)-1], true
}

// List returns a copy of the visible callouts, oldest first.
func (b *Board) List() []model.Callout {
	out := make([]model.Callout, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of visible callouts.
func (b *Board) Len() int { return len(b.items) }

// Reset drops every callout.
func (b *Board) Reset() {
	b.items = b.items[:0]
}
