package repository

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithMaxEntities caps the population. Values below one are ignored.
func WithMaxEntities(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.maxEntities = n
		}
	}
}
