// Package types contains the read-only views handed to renderers and clients.
package types

// Point is a viewport coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity is the observable shape of one square.
type Entity struct {
	ID        uint64  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Size      float64 `json:"size"`
	Health    int     `json:"health"`
	Destroyed bool    `json:"destroyed"`
}

// ShotMarker is the transient marker drawn where the last shot landed.
type ShotMarker struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

// Callout reports the result of one hit.
type Callout struct {
	ID          uint64  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Points      float64 `json:"points"`
	HealthLabel float64 `json:"health_label"`
	Visible     bool    `json:"visible"`
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	RoundID    string     `json:"round_id"`
	Generation uint64     `json:"generation"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Entities   []Entity   `json:"entities"`
	Score      float64    `json:"score"`
	Energy     float64    `json:"energy"`
	State      string     `json:"state"`
	Shot       ShotMarker `json:"shot"`

	// Callout is the most recent visible callout, for single-slot renderers.
	Callout  Callout   `json:"callout"`
	Callouts []Callout `json:"callouts"`
}

// GameOver reports whether the snapshot was taken after energy ran out.
func (s Snapshot) GameOver() bool {
	return s.State == "game_over"
}

// Hit describes the effect of a shot on one entity.
type Hit struct {
	EntityID    uint64  `json:"entity_id"`
	HealthAfter int     `json:"health_after"`
	Destroyed   bool    `json:"destroyed"`
	Points      float64 `json:"points"`
	Reward      float64 `json:"reward"`
}

// ShotOutcome is the result of one shoot attempt. Accepted is false when the
// attempt was ignored because energy was already exhausted.
type ShotOutcome struct {
	Accepted bool    `json:"accepted"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Cost     float64 `json:"cost"`
	Hits     []Hit   `json:"hits"`
	Score    float64 `json:"score"`
	Energy   float64 `json:"energy"`
	State    string  `json:"state"`
}
