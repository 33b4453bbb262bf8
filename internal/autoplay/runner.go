// Package autoplay drives the game over HTTP with a simple aiming bot.
// It plays a fixed number of rounds and reports what happened.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/boxshot/internal/domain/types"
	"github.com/okian/boxshot/pkg/logger"
)

// Run plays config.Rounds rounds against the service and returns the run
// statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	cfg := withDefaults(config)
	stats := &Stats{
		RunID:     uuid.NewString(),
		StartTime: time.Now(),
	}
	log := logger.Get().Named("autoplay")

	log.Info(ctx, "starting autoplay",
		logger.String("run_id", stats.RunID),
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Duration("interval", cfg.Interval),
		logger.Duration("timeout", cfg.Timeout),
		logger.Duration("maxRound", cfg.MaxRound))

	client := NewClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Start from a fresh round
	if _, err := client.PlayAgain(ctx); err != nil {
		return stats, fmt.Errorf("failed to start round: %w", err)
	}

	// Step 3: Play
	for round := 1; round <= cfg.Rounds; round++ {
		snap, err := playRound(ctx, client, &cfg, stats, log)
		if err != nil {
			return stats, fmt.Errorf("round %d: %w", round, err)
		}

		stats.Rounds++
		stats.TotalScore += snap.Score
		stats.BestScore = max(stats.BestScore, snap.Score)
		log.Info(ctx, "round finished",
			logger.Int("round", round),
			logger.String("round_id", snap.RoundID),
			logger.Float64("score", snap.Score))

		if round < cfg.Rounds {
			if _, err := client.PlayAgain(ctx); err != nil {
				return stats, fmt.Errorf("failed to start round %d: %w", round+1, err)
			}
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)
	return stats, nil
}

func withDefaults(config *Config) Config {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRounds
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRound <= 0 {
		cfg.MaxRound = DefaultMaxRound
	}
	return cfg
}

// playRound shoots until the round is over and returns the final snapshot.
// The bot has no exit animation, so destroyed squares are reported as soon
// as they are seen. A round still running after cfg.MaxRound fails with
// ErrRoundTimeout.
func playRound(ctx context.Context, client *Client, cfg *Config, stats *Stats, log logger.Logger) (types.Snapshot, error) {
	roundCtx, cancel := context.WithTimeout(ctx, cfg.MaxRound)
	defer cancel()

	snap, err := shootUntilOver(roundCtx, client, cfg, stats, log)
	if err != nil && ctx.Err() == nil && errors.Is(roundCtx.Err(), context.DeadlineExceeded) {
		return types.Snapshot{}, fmt.Errorf("%w after %s", ErrRoundTimeout, cfg.MaxRound)
	}
	return snap, err
}

func shootUntilOver(ctx context.Context, client *Client, cfg *Config, stats *Stats, log logger.Logger) (types.Snapshot, error) {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return types.Snapshot{}, ctx.Err()
		case <-ticker.C:
		}

		snap, err := client.Snapshot(ctx)
		if err != nil {
			if errors.Is(err, ErrStatus) {
				stats.Failed++
				log.Warn(ctx, "snapshot failed", logger.Error(err))
				continue
			}
			return types.Snapshot{}, err
		}
		if snap.GameOver() {
			return snap, nil
		}

		for _, id := range destroyedIDs(&snap) {
			removed, err := client.Exit(ctx, id)
			if err != nil {
				stats.Failed++
				log.Warn(ctx, "exit report failed", logger.Uint64("id", id), logger.Error(err))
				continue
			}
			if removed {
				stats.Exits++
			}
		}

		target, ok := pickTarget(&snap)
		if !ok {
			continue
		}

		out, err := client.Shoot(ctx, target)
		if err != nil {
			stats.Failed++
			log.Warn(ctx, "shot failed", logger.Error(err))
			continue
		}
		stats.Shots++
		if !out.Accepted {
			stats.Rejected++
			continue
		}
		for _, h := range out.Hits {
			stats.Hits++
			if h.Destroyed {
				stats.Kills++
			}
		}
		if cfg.Verbose {
			log.Info(ctx, "shot",
				logger.Float64("x", target.X),
				logger.Float64("y", target.Y),
				logger.Int("hits", len(out.Hits)),
				logger.Float64("score", out.Score),
				logger.Float64("energy", out.Energy))
		}
	}
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var accuracy, avgScore float64

	if stats.Shots > 0 {
		accuracy = float64(stats.Hits) / float64(stats.Shots) * PercentageMultiplier
	}
	if stats.Rounds > 0 {
		avgScore = stats.TotalScore / float64(stats.Rounds)
	}

	log.Info(ctx, "final statistics",
		logger.String("run_id", stats.RunID),
		logger.Int("rounds", stats.Rounds),
		logger.Int("shots", stats.Shots),
		logger.Int("rejected", stats.Rejected),
		logger.Int("hits", stats.Hits),
		logger.Int("kills", stats.Kills),
		logger.Int("exits", stats.Exits),
		logger.Int("failed", stats.Failed),
		logger.Float64("bestScore", stats.BestScore),
		logger.Float64("avgScore", avgScore),
		logger.Float64("accuracy", accuracy),
		logger.String("duration", stats.Duration.String()))
}
