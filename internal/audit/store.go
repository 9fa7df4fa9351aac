package audit

import (
	"context"
	"sync"
)

// Sink receives emitted events. Implementations must tolerate concurrent
// writers.
type Sink interface {
	Write(ctx context.Context, e Event) error
}

// InMemoryStore collects events in memory for tests and single-node runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Write(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// List returns a snapshot of all captured events in emission order.
func (s *InMemoryStore) List() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.events...)
}
