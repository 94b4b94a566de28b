// Package session holds the shared client state (signed in user, board list,
// focus timer) as explicit stores with subscribe/notify and teardown.
package session

import (
	"sort"
	"sync"
)

// Store value plus subscribers; listeners run synchronously after each change
type Store[T any] struct {
	mu        sync.Mutex
	value     T
	nextID    int
	listeners map[int]func(T)
}

func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{value: initial, listeners: make(map[int]func(T))}
}

func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe returns the unsubscribe func; calling it twice is safe
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Set stores v and notifies in subscription order, outside the lock
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Ints(ids)
	for _, id := range ids {
		s.mu.Lock()
		fn, ok := s.listeners[id]
		s.mu.Unlock()
		if ok {
			fn(v)
		}
	}
}
