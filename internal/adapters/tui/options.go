package tui

import (
	"time"

	"github.com/okian/boxshot/pkg/logger"
)

const (
	// DefaultFrameInterval redraws at roughly 30 frames per second.
	DefaultFrameInterval = 33 * time.Millisecond
	// DefaultExitDelay is how long a destroyed square stays on screen.
	DefaultExitDelay = 300 * time.Millisecond
)

// Option applies a configuration option to the UI.
type Option func(*UI)

// WithSound sets the sound played on hits and kills.
func WithSound(s Sound) Option {
	return func(u *UI) {
		if s != nil {
			u.sound = s
		}
	}
}

// WithExitDelay sets how long destroyed squares are shown before the exit
// is reported.
func WithExitDelay(d time.Duration) Option {
	return func(u *UI) {
		if d >= 0 {
			u.exits = newExitTracker(d)
		}
	}
}

// WithFrameInterval sets the redraw period.
func WithFrameInterval(d time.Duration) Option {
	return func(u *UI) {
		if d > 0 {
			u.frame = d
		}
	}
}

// WithLogger sets a custom logger for the UI.
func WithLogger(log logger.Logger) Option {
	return func(u *UI) {
		if log != nil {
			u.logger = log
		}
	}
}
