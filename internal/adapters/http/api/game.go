package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/boxshot/internal/domain/types"
)

// GameDependencies is the simulation surface exposed over HTTP.
type GameDependencies interface {
	Snapshot(ctx context.Context) (types.Snapshot, error)
	Shoot(ctx context.Context, p types.Point) (types.ShotOutcome, error)
	ExitAnimationComplete(ctx context.Context, id uint64) (bool, error)
	PlayAgain(ctx context.Context) (types.Snapshot, error)
}

// GameHandler handles the snapshot and input routes.
type GameHandler struct {
	deps GameDependencies
}

// NewGameHandler creates a new game handler.
func NewGameHandler(deps GameDependencies) *GameHandler {
	return &GameHandler{deps: deps}
}

// shootRequest is the body of POST /shoot.
type shootRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (s shootRequest) validate() error {
	switch {
	case s.X == nil:
		return errors.New("missing x")
	case s.Y == nil:
		return errors.New("missing y")
	case math.IsNaN(*s.X) || math.IsInf(*s.X, 0):
		return errors.New("x must be finite")
	case math.IsNaN(*s.Y) || math.IsInf(*s.Y, 0):
		return errors.New("y must be finite")
	}
	return nil
}

type exitResponse struct {
	ID      uint64 `json:"id"`
	Removed bool   `json:"removed"`
}

// HandleSnapshot handles GET /snapshot requests.
func (h *GameHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	const op = "api.snapshot"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleShoot handles POST /shoot requests. A shot refused because the game
// is over still answers 200 with accepted=false.
func (h *GameHandler) HandleShoot(w http.ResponseWriter, r *http.Request) {
	const op = "api.shoot"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req shootRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := h.deps.Shoot(r.Context(), types.Point{X: *req.X, Y: *req.Y})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleExit handles POST /exit/{id} requests.
func (h *GameHandler) HandleExit(w http.ResponseWriter, r *http.Request) {
	const op = "api.exit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/exit/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	id, err := strconv.ParseUint(path, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	removed, err := h.deps.ExitAnimationComplete(r.Context(), id)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, exitResponse{ID: id, Removed: removed})
}

// HandlePlayAgain handles POST /play-again requests.
func (h *GameHandler) HandlePlayAgain(w http.ResponseWriter, r *http.Request) {
	const op = "api.play_again"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.PlayAgain(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// writeServiceError maps plumbing errors from the simulation to a status.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case isBackpressure(err):
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
	case isUnavailable(err):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusGatewayTimeout, "timeout", fmt.Errorf("%s: %w", op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
	}
}
