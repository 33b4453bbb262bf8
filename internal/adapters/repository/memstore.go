package repository

import (
	"github.com/okian/boxshot/internal/domain/model"
	"github.com/okian/boxshot/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultMaxEntities = 64
)

// InMemoryStore is a slice-backed Store ordered by creation time. Ids are
// monotonic for the lifetime of the store, so a removal request for an id
// from a previous round can never match a current entity.
type InMemoryStore struct {
	entities    []*model.Entity
	nextID      uint64
	maxEntities int
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty store.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{maxEntities: defaultMaxEntities}
	for _, opt := range opts {
		opt(s)
	}
	s.entities = make([]*model.Entity, 0, s.maxEntities)
	return s
}

// Spawn implements Store. Eviction prefers the oldest destroyed entity and
// falls back to the oldest one overall.
func (s *InMemoryStore) Spawn(size float64, pos model.Point) (model.Entity, []uint64) {
	var evicted []uint64
	for len(s.entities) >= s.maxEntities {
		idx := s.evictionCandidate()
		evicted = append(evicted, s.entities[idx].ID)
		s.removeAt(idx)
		metrics.RecordEviction()
	}

	s.nextID++
	e := model.NewEntity(s.nextID, size, pos)
	s.entities = append(s.entities, &e)
	metrics.RecordSpawn()
	return e, evicted
}

func (s *InMemoryStore) evictionCandidate() int {
	for i, e := range s.entities {
		if e.Destroyed {
			return i
		}
	}
	return 0
}

func (s *InMemoryStore) removeAt(i int) {
	copy(s.entities[i:], s.entities[i+1:])
	s.entities[len(s.entities)-1] = nil
	s.entities = s.entities[:len(s.entities)-1]
}

// At implements Store.
func (s *InMemoryStore) At(p model.Point) []*model.Entity {
	var hits []*model.Entity
	for _, e := range s.entities {
		if !e.Destroyed && e.Contains(p) {
			hits = append(hits, e)
		}
	}
	return hits
}

// Move implements Store.
func (s *InMemoryStore) Move(fn func(e *model.Entity)) {
	for _, e := range s.entities {
		fn(e)
	}
}

// Get implements Store.
func (s *InMemoryStore) Get(id uint64) (model.Entity, bool) {
	for _, e := range s.entities {
		if e.ID == id {
			return *e, true
		}
	}
	return model.Entity{}, false
}

// RemoveDestroyed implements Store.
func (s *InMemoryStore) RemoveDestroyed(id uint64) bool {
	for i, e := range s.entities {
		if e.ID != id {
			continue
		}
		if !e.Destroyed {
			return false
		}
		s.removeAt(i)
		metrics.RecordRemoval()
		return true
	}
	return false
}

// List implements Store.
func (s *InMemoryStore) List() []model.Entity {
	out := make([]model.Entity, len(s.entities))
	for i, e := range s.entities {
		out[i] = *e
	}
	return out
}

// Clear implements Store.
func (s *InMemoryStore) Clear() {
	for i := range s.entities {
		s.entities[i] = nil
	}
	s.entities = s.entities[:0]
}

// Len implements Store.
func (s *InMemoryStore) Len() int { return len(s.entities) }

// Live returns the number of entities that are not destroyed.
func (s *InMemoryStore) Live() int {
	n := 0
	for _, e := range s.entities {
		if !e.Destroyed {
			n++
		}
	}
	return n
}
