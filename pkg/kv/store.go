// Package kv provides a generic key-value arena.
package kv

// Store is a generic key-value arena. It is owned by a single goroutine and
// is not safe for concurrent use.
type Store[K comparable, V any] struct {
	data map[K]V
}

// New creates a new key-value store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.data[key] = value
}

// Retain keeps only the entries whose key satisfies keep and returns how
// many entries were removed.
func (s *Store[K, V]) Retain(keep func(K) bool) int {
	removed := 0
	for k := range s.data {
		if !keep(k) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	return len(s.data)
}
