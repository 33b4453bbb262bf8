package service

import (
	"github.com/okian/boxshot/internal/config"
	"github.com/okian/boxshot/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the game and queue configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			c := *cfg
			s.cfg = &c
		}
	}
}

// WithQueueSize sets the maximum number of pending loop jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cfg.QueueSize = size
		}
	}
}

// WithSeed fixes the random source so a session can be replayed.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		s.cfg.Seed = seed
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}
