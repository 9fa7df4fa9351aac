// Package record persists the full outcome of each verification run, keyed
// by the admission stamp hash minted for the submission.
package record

import (
	"encoding/json"
	"time"
)

// VerificationRecord is the durable trail of one verification: who
// submitted what, how it scored, which pattern it touched, and the stamp
// that identifies it.
type VerificationRecord struct {
	// ID is the admission stamp hash.
	ID     string `json:"id"`
	TaskID string `json:"task_id,omitempty"`
	UserID string `json:"user_id"`

	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`

	// Outcome is the serialized response returned to the caller.
	Outcome json.RawMessage `json:"outcome"`

	PatternID         string `json:"pattern_id,omitempty"`
	LearnedNewPattern bool   `json:"learned_new_pattern"`

	StampLeadingZeros    int  `json:"stamp_leading_zeros"`
	StampMeetsDifficulty bool `json:"stamp_meets_difficulty"`

	CreatedAt time.Time `json:"created_at"`
}
