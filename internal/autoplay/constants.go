package autoplay

import "time"

// Defaults applied to zero Config fields.
const (
	DefaultBaseURL  = "http://localhost:9080"
	DefaultRounds   = 3
	DefaultInterval = 150 * time.Millisecond
	DefaultTimeout  = 5 * time.Second
	DefaultMaxRound = 5 * time.Minute
)

// PercentageMultiplier converts ratios to percentages.
const PercentageMultiplier = 100
