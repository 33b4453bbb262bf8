// Package economy holds the score accumulator and the energy gauge.
//
// Energy is floored at zero on every mutation. Gains are uncapped unless a
// ceiling is configured. Score only grows until Reset.
package economy

import (
	"math"

	"github.com/okian/boxshot/internal/domain/model"
)

// Default economy configuration constants.
const (
	DefaultInitialEnergy = 100.0
)

// Option applies a configuration option to the Economy.
type Option func(*Economy)

// WithInitialEnergy sets the energy restored by Reset.
func WithInitialEnergy(energy float64) Option {
	return func(e *Economy) {
		if energy > 0 {
			e.initial = energy
		}
	}
}

// WithCeiling caps energy gains. A ceiling of 0 disables the cap.
func WithCeiling(ceiling float64) Option {
	return func(e *Economy) {
		if ceiling >= 0 {
			e.ceiling = ceiling
		}
	}
}

// Economy is the score/energy pair. It is not safe for concurrent use; the
// simulation loop owns it.
type Economy struct {
	score   float64
	energy  float64
	initial float64
	ceiling float64
}

// New creates an Economy already reset to its initial values.
func New(opts ...Option) *Economy {
	e := &Economy{initial: DefaultInitialEnergy}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Spend removes amount from energy, flooring at zero, and returns the new energy.
func (e *Economy) Spend(amount float64) float64 {
	e.energy = math.Max(0, e.energy-amount)
	return e.energy
}

// Gain adds amount to energy, flooring at zero. With a ceiling configured the
// result is capped, but a gain never lowers energy already above the ceiling.
func (e *Economy) Gain(amount float64) float64 {
	next := math.Max(0, e.energy+amount)
	if e.ceiling > 0 && next > e.ceiling {
		next = math.Max(e.ceiling, e.energy)
	}
	e.energy = next
	return e.energy
}

// Award adds points to the score. Negative awards are ignored.
func (e *Economy) Award(points float64) float64 {
	if points > 0 {
		e.score += points
	}
	return e.score
}

// Decay is the periodic background energy loss.
func (e *Economy) Decay(amount float64) float64 {
	return e.Spend(amount)
}

// Reset restores score to zero and energy to its initial value.
func (e *Economy) Reset() {
	e.score = 0
	e.energy = e.initial
}

// Score returns the current score.
func (e *Economy) Score() float64 { return e.score }

// Energy returns the current energy.
func (e *Economy) Energy() float64 { return e.energy }

// State derives the lifecycle state from energy.
func (e *Economy) State() model.State { return model.StateFor(e.energy) }

// CanShoot reports whether a shot may be resolved.
func (e *Economy) CanShoot() bool { return e.energy > 0 }
