// Package model contains the simulation's domain records.
package model

import "math"

// Entity size bounds: sizes are drawn from [MinSize, MaxSize).
const (
	MinSize = 20.0
	MaxSize = 70.0
)

// Point is a viewport coordinate.
type Point struct {
	X float64
	Y float64
}

// Entity is a destructible square target. Size is fixed at creation and
// Destroyed only ever moves from false to true.
type Entity struct {
	ID        uint64
	Size      float64
	Health    int
	Pos       Point
	Destroyed bool
}

// NewEntity builds an entity with health derived from its size.
func NewEntity(id uint64, size float64, pos Point) Entity {
	return Entity{
		ID:     id,
		Size:   size,
		Health: HealthFor(size),
		Pos:    pos,
	}
}

// HealthFor returns the starting health of a square of the given size.
func HealthFor(size float64) int {
	return int(math.Floor(size / 10))
}

// Contains reports whether p lies inside the entity's square, edges included.
func (e *Entity) Contains(p Point) bool {
	return p.X >= e.Pos.X && p.X <= e.Pos.X+e.Size &&
		p.Y >= e.Pos.Y && p.Y <= e.Pos.Y+e.Size
}

// Damage removes one point of health and marks the entity destroyed when it
// runs out. It reports whether this hit was the lethal one.
func (e *Entity) Damage() bool {
	if e.Destroyed {
		return false
	}
	e.Health--
	if e.Health <= 0 {
		e.Destroyed = true
		return true
	}
	return false
}

// Center returns the midpoint of the entity's square.
func (e *Entity) Center() Point {
	half := e.Size / 2
	return Point{X: e.Pos.X + half, Y: e.Pos.Y + half}
}
