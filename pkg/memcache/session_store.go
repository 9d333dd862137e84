package memcache

import (
	"sync"
	"time"
)

// Store is an in-process TTL map keyed by session ID. All matching state is
// scoped to one user's session and discarded when the TTL runs out, so there
// is no persistence layer behind it.
type Store[T any] struct {
	mu   sync.RWMutex
	data map[string]entry[T]
	ttl  time.Duration
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		data: make(map[string]entry[T]),
		ttl:  ttl,
	}
}

func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[T]{
		value:     value,
		expiresAt: time.Now().Add(s.ttl),
	}
}

func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.data[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, key) // cleanup expired
		return zero, false
	}
	return e.value, true
}

// Touch extends the TTL of an existing key without replacing its value.
func (s *Store[T]) Touch(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return
	}
	e.expiresAt = time.Now().Add(s.ttl)
	s.data[key] = e
}

func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
