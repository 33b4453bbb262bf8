package model

// ShotMarker is the short-lived visual marker left by a shot. Seq identifies
// the shot that placed it so an expiry timer only clears its own marker.
type ShotMarker struct {
	Pos     Point
	Seq     uint64
	Visible bool
}

// Callout is a short-lived annotation reporting one hit.
type Callout struct {
	ID       uint64
	EntityID uint64
	Pos      Point
	Points   float64
	// HealthLabel is size/2, shown under the legacy "health" caption.
	HealthLabel float64
}

// Viewport is the area entities spawn into.
type Viewport struct {
	Width  float64
	Height float64
}

// State is the game lifecycle state.
type State int

// Lifecycle states.
const (
	StateActive State = iota
	StateGameOver
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// StateFor derives the lifecycle state from the energy gauge.
func StateFor(energy float64) State {
	if energy <= 0 {
		return StateGameOver
	}
	return StateActive
}
