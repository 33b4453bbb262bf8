package game

import (
	"time"

	"github.com/okian/boxshot/internal/domain/model"
	"github.com/okian/boxshot/pkg/logger"
)

// Option applies a configuration option to the Game.
type Option func(*Game)

// WithViewport sets the area reported to renderers.
func WithViewport(vp model.Viewport) Option {
	return func(g *Game) {
		if vp.Width > 0 && vp.Height > 0 {
			g.viewport = vp
		}
	}
}

// WithShotCost sets the energy spent per shot.
func WithShotCost(cost float64) Option {
	return func(g *Game) {
		if cost >= 0 {
			g.shotCost = cost
		}
	}
}

// WithDecayAmount sets the energy lost per decay tick.
func WithDecayAmount(amount float64) Option {
	return func(g *Game) {
		if amount >= 0 {
			g.decayAmount = amount
		}
	}
}

// WithInitialEnergy sets the energy at the start of every round.
func WithInitialEnergy(energy float64) Option {
	return func(g *Game) {
		if energy > 0 {
			g.initialEnergy = energy
		}
	}
}

// WithEnergyCeiling caps energy gains. Zero disables the cap.
func WithEnergyCeiling(ceiling float64) Option {
	return func(g *Game) {
		if ceiling >= 0 {
			g.energyCeiling = ceiling
		}
	}
}

// WithMaxCallouts sets how many callouts may be visible at once.
func WithMaxCallouts(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.maxCallouts = n
		}
	}
}

// WithShotMarkerTTL sets how long a shot marker stays visible.
func WithShotMarkerTTL(d time.Duration) Option {
	return func(g *Game) {
		if d > 0 {
			g.markerTTL = d
		}
	}
}

// WithCalloutTTL sets how long a callout stays visible.
func WithCalloutTTL(d time.Duration) Option {
	return func(g *Game) {
		if d > 0 {
			g.calloutTTL = d
		}
	}
}

// WithLogger sets a custom logger for the game.
func WithLogger(l logger.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}
