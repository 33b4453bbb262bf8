// Package repository holds the live set of squares.
package repository

import (
	"github.com/okian/boxshot/internal/domain/model"
)

// Store provides read/write access to the entity set. Implementations are
// owned by the simulation loop and need not be safe for concurrent use.
type Store interface {
	// Spawn appends a new entity with a fresh id. When the population cap is
	// reached it evicts entities first and returns their ids.
	Spawn(size float64, pos model.Point) (model.Entity, []uint64)

	// At returns the non-destroyed entities whose square contains p, oldest
	// first. The returned pointers may be mutated by the caller.
	At(p model.Point) []*model.Entity

	// Move applies fn to every entity, destroyed ones included.
	Move(fn func(e *model.Entity))

	// Get returns a copy of the entity with id.
	Get(id uint64) (model.Entity, bool)

	// RemoveDestroyed deletes id only if it exists and is destroyed.
	RemoveDestroyed(id uint64) bool

	// List returns a copy of every entity, oldest first.
	List() []model.Entity

	// Clear drops every entity. Ids keep increasing afterwards.
	Clear()

	// Len returns the number of entities, destroyed ones included.
	Len() int

	// Live returns the number of entities not yet destroyed.
	Live() int
}
