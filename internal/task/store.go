package task

import (
	"context"
	"encoding/json"
)

// Store persists tasks.
type Store interface {
	// GetByID returns the task or a not-found coded error.
	GetByID(ctx context.Context, id string) (*Task, error)

	// Create persists a new task.
	Create(ctx context.Context, t *Task) error

	// AttachVerification writes a verification outcome onto the task and,
	// when the submission passed, transitions the status from in_progress
	// to awaiting_review. The read-modify-write is atomic per task.
	AttachVerification(ctx context.Context, id string, result json.RawMessage, passed bool) error
}
