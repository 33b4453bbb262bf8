package autoplay

import "errors"

// ErrUnhealthy is returned when the service health check fails.
var ErrUnhealthy = errors.New("service unhealthy")

// ErrStatus is returned for responses with an unexpected status code.
var ErrStatus = errors.New("unexpected status")

// ErrRoundTimeout is returned when a round outlives Config.MaxRound.
var ErrRoundTimeout = errors.New("round did not finish in time")
