package autoplay

import "time"

// Config holds configuration for an autoplay run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Rounds   int           // Number of rounds to play
	Interval time.Duration // Delay between decisions
	Timeout  time.Duration // HTTP request timeout
	MaxRound time.Duration // Upper bound on one round
	LogFile  string        // Log file for run output
	Verbose  bool          // Log every shot
}

// Stats holds run statistics.
type Stats struct {
	RunID      string
	Rounds     int
	Shots      int
	Rejected   int
	Hits       int
	Kills      int
	Exits      int
	Failed     int
	BestScore  float64
	TotalScore float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// exitResponse mirrors the body of POST /exit/{id}.
type exitResponse struct {
	ID      uint64 `json:"id"`
	Removed bool   `json:"removed"`
}
