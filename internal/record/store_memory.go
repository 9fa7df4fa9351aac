package record

import (
	"context"
	"encoding/json"
	"sync"

	dErrors "taskproof/pkg/domain-errors"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*VerificationRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*VerificationRecord)}
}

func (s *InMemoryStore) Insert(_ context.Context, r *VerificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[r.ID]; ok {
		return dErrors.New(dErrors.CodeConflict, "verification record already exists")
	}
	clone := *r
	clone.Outcome = append(json.RawMessage(nil), r.Outcome...)
	s.records[clone.ID] = &clone
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (*VerificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "verification record not found")
	}
	clone := *r
	clone.Outcome = append(json.RawMessage(nil), r.Outcome...)
	return &clone, nil
}
