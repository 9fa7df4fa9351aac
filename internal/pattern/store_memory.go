package pattern

import (
	"context"
	"sync"

	dErrors "taskproof/pkg/domain-errors"
)

// InMemoryStore keeps patterns in process memory. Used by tests and by
// deployments without Redis configured.
type InMemoryStore struct {
	mu         sync.RWMutex
	patterns   map[string]*EvidencePattern
	byCategory map[string][]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		patterns:   make(map[string]*EvidencePattern),
		byCategory: make(map[string][]string),
	}
}

func (s *InMemoryStore) ListByCategory(_ context.Context, category string) ([]*EvidencePattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byCategory[category]
	out := make([]*EvidencePattern, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.patterns[id]; ok {
			clone := *p
			clone.Rules = append([]string(nil), p.Rules...)
			clone.Examples = append([]string(nil), p.Examples...)
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Create(_ context.Context, p *EvidencePattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *p
	clone.Rules = append([]string(nil), p.Rules...)
	clone.Examples = append([]string(nil), p.Examples...)

	s.patterns[clone.ID] = &clone
	s.byCategory[clone.TaskCategory] = append(s.byCategory[clone.TaskCategory], clone.ID)
	return nil
}

// Reinforce applies the running-average update under the store lock, so
// concurrent reinforcements serialize and the count-weighted mean stays
// exact.
func (s *InMemoryStore) Reinforce(_ context.Context, patternID string, score float64) (int, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patterns[patternID]
	if !ok {
		return 0, 0, dErrors.New(dErrors.CodeNotFound, "pattern not found")
	}

	newCount := p.UsageCount + 1
	p.SuccessRate = (p.SuccessRate*float64(p.UsageCount) + score) / float64(newCount)
	p.UsageCount = newCount
	return p.UsageCount, p.SuccessRate, nil
}
