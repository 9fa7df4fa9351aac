// Package audit emits structured events for completed verifications and
// pattern-store mutations. Publishing is fire-and-forget: audit loss is
// logged, never surfaced to the request.
package audit

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventVerificationCompleted EventType = "verification.completed"
	EventPatternLearned        EventType = "pattern.learned"
	EventPatternReinforced     EventType = "pattern.reinforced"
)

// Event is one audit entry. Payload is event-type specific; ClientIP and
// ClientInfo come from the request metadata middleware and are empty for
// events emitted outside an HTTP request.
type Event struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	UserID     string          `json:"user_id,omitempty"`
	TaskID     string          `json:"task_id,omitempty"`
	ClientIP   string          `json:"client_ip,omitempty"`
	ClientInfo string          `json:"client_info,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
