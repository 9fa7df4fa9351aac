package task

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	dErrors "taskproof/pkg/domain-errors"
)

// InMemoryStore keeps tasks in process memory for tests and single-node
// deployments without Postgres configured.
type InMemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	now   func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		tasks: make(map[string]*Task),
		now:   time.Now,
	}
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "task not found")
	}
	clone := *t
	clone.VerificationResult = append(json.RawMessage(nil), t.VerificationResult...)
	return &clone, nil
}

func (s *InMemoryStore) Create(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; ok {
		return dErrors.New(dErrors.CodeConflict, "task already exists")
	}
	clone := *t
	s.tasks[t.ID] = &clone
	return nil
}

func (s *InMemoryStore) AttachVerification(_ context.Context, id string, result json.RawMessage, passed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return dErrors.New(dErrors.CodeNotFound, "task not found")
	}

	t.VerificationResult = append(json.RawMessage(nil), result...)
	if passed && t.Status == StatusInProgress {
		t.Status = StatusAwaitingReview
	}
	t.UpdatedAt = s.now().UTC()
	return nil
}
