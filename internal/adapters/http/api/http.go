// Package api exposes the simulation over HTTP so a remote renderer can
// poll snapshots and post input.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/boxshot/internal/adapters/mq/queue"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	GameDependencies
	StatsProvider
}

// Server wires HTTP routes for the game API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	gameHandler   *GameHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps),
		gameHandler:   NewGameHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/snapshot", MetricsMiddleware(s.gameHandler.HandleSnapshot, "snapshot"))
	mux.HandleFunc("/shoot", MetricsMiddleware(s.gameHandler.HandleShoot, "shoot"))
	mux.HandleFunc("/exit/", MetricsMiddleware(s.gameHandler.HandleExit, "exit"))
	mux.HandleFunc("/play-again", MetricsMiddleware(s.gameHandler.HandlePlayAgain, "play_again"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isBackpressure reports whether the loop refused work because its queue
// was full.
func isBackpressure(err error) bool {
	return errors.Is(err, queue.ErrFull)
}

// isUnavailable reports whether the loop is not running.
func isUnavailable(err error) bool {
	return errors.Is(err, queue.ErrClosed)
}
