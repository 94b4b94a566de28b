package client

import (
	"sort"
	"sync"
)

// AuthEvent session transitions published by the Auth API
type AuthEvent string

const (
	SignedIn       AuthEvent = "SIGNED_IN"
	SignedOut      AuthEvent = "SIGNED_OUT"
	TokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// AuthListener receives the event and the session as it is after the transition
type AuthListener func(event AuthEvent, tokens Tokens)

type eventBus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]AuthListener
}

func newEventBus() *eventBus {
	return &eventBus{listeners: make(map[int]AuthListener)}
}

func (b *eventBus) subscribe(fn AuthListener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// emit calls listeners outside the lock in subscription order
func (b *eventBus) emit(event AuthEvent, tokens Tokens) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	b.mu.Unlock()

	sort.Ints(ids)
	for _, id := range ids {
		b.mu.Lock()
		fn, ok := b.listeners[id]
		b.mu.Unlock()
		if ok {
			fn(event, tokens)
		}
	}
}
