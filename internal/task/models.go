// Package task holds the task records that submissions verify against.
package task

import (
	"encoding/json"
	"time"
)

type Status string

const (
	StatusInProgress     Status = "in_progress"
	StatusAwaitingReview Status = "awaiting_review"
)

// Task is the unit of paid work a submission claims to complete. The
// verification pipeline writes its outcome back onto the record and moves
// the status to awaiting_review on a pass; a failed submission leaves the
// task in progress.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`

	// VerificationResult is the last pipeline outcome, stored verbatim so
	// reviewers see the same breakdown the worker was shown.
	VerificationResult json.RawMessage `json:"verification_result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
