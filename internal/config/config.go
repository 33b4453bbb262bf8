// Package config defines the simulation configuration and its loading hooks.
//
// Conventions:
//   - New() returns a Config holding the documented game constants.
//   - Load(ctx) layers a YAML file and BOXSHOT_* environment variables on top.
//   - Durations are stored as integer milliseconds so env vars stay plain numbers.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the simulation command queue.
	QueueSize int `koanf:"queue_size"`

	// ViewportWidth and ViewportHeight bound spawn positions.
	ViewportWidth  float64 `koanf:"viewport_width"`
	ViewportHeight float64 `koanf:"viewport_height"`

	// Periods of the three background tasks.
	SpawnIntervalMS  int `koanf:"spawn_interval_ms"`
	MotionIntervalMS int `koanf:"motion_interval_ms"`
	DecayIntervalMS  int `koanf:"decay_interval_ms"`

	// Lifetimes of the transient shot marker and score callouts.
	ShotMarkerMS int `koanf:"shot_marker_ms"`
	CalloutMS    int `koanf:"callout_ms"`

	ShotCost      float64 `koanf:"shot_cost"`
	DecayAmount   float64 `koanf:"decay_amount"`
	InitialEnergy float64 `koanf:"initial_energy"`

	// EnergyCeiling caps energy gains; 0 leaves gains uncapped.
	EnergyCeiling float64 `koanf:"energy_ceiling"`

	// MaxEntities caps the live population; MaxCallouts caps visible callouts.
	MaxEntities int `koanf:"max_entities"`
	MaxCallouts int `koanf:"max_callouts"`

	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64 `koanf:"seed"`

	// ExitAnimationMS is how long the terminal client shows a destroyed
	// square before reporting its exit.
	ExitAnimationMS int `koanf:"exit_animation_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		QueueSize:        1024,
		ViewportWidth:    800,
		ViewportHeight:   600,
		SpawnIntervalMS:  1000,
		MotionIntervalMS: 100,
		DecayIntervalMS:  1000,
		ShotMarkerMS:     100,
		CalloutMS:        1000,
		ShotCost:         10,
		DecayAmount:      1,
		InitialEnergy:    100,
		EnergyCeiling:    0,
		MaxEntities:      64,
		MaxCallouts:      8,
		Seed:             0,
		ExitAnimationMS:  300,
	}
}

// SpawnInterval returns the spawn period.
func (c *Config) SpawnInterval() time.Duration { return ms(c.SpawnIntervalMS) }

// MotionInterval returns the motion period.
func (c *Config) MotionInterval() time.Duration { return ms(c.MotionIntervalMS) }

// DecayInterval returns the energy decay period.
func (c *Config) DecayInterval() time.Duration { return ms(c.DecayIntervalMS) }

// ShotMarkerTTL returns how long the shot marker stays visible.
func (c *Config) ShotMarkerTTL() time.Duration { return ms(c.ShotMarkerMS) }

// CalloutTTL returns how long a score callout stays visible.
func (c *Config) CalloutTTL() time.Duration { return ms(c.CalloutMS) }

// ExitAnimation returns how long destroyed squares stay on screen.
func (c *Config) ExitAnimation() time.Duration { return ms(c.ExitAnimationMS) }

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return fmt.Errorf("%w: viewport must be positive", ErrInvalidConfig)
	case c.SpawnIntervalMS <= 0 || c.MotionIntervalMS <= 0 || c.DecayIntervalMS <= 0:
		return fmt.Errorf("%w: task intervals must be positive", ErrInvalidConfig)
	case c.ShotMarkerMS <= 0 || c.CalloutMS <= 0:
		return fmt.Errorf("%w: transient lifetimes must be positive", ErrInvalidConfig)
	case c.ShotCost < 0 || c.DecayAmount < 0:
		return fmt.Errorf("%w: shot_cost and decay_amount must not be negative", ErrInvalidConfig)
	case c.InitialEnergy <= 0:
		return fmt.Errorf("%w: initial_energy must be positive", ErrInvalidConfig)
	case c.EnergyCeiling < 0:
		return fmt.Errorf("%w: energy_ceiling must not be negative", ErrInvalidConfig)
	case c.MaxEntities <= 0 || c.MaxCallouts <= 0:
		return fmt.Errorf("%w: max_entities and max_callouts must be positive", ErrInvalidConfig)
	case c.ExitAnimationMS < 0:
		return fmt.Errorf("%w: exit_animation_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
