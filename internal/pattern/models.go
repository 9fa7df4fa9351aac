// Package pattern implements similarity-based retrieval and adaptive
// reinforcement of verification patterns learned from prior submissions.
package pattern

import "time"

// EvidencePattern is a learned cluster of verification rule tags and example
// texts for one task category. Patterns are never deleted by this engine;
// reinforcement only touches the usage counters.
type EvidencePattern struct {
	ID           string    `json:"id"`
	TaskCategory string    `json:"task_category"`
	Rules        []string  `json:"rules"`
	Confidence   float64   `json:"confidence"`
	Examples     []string  `json:"examples"`
	UsageCount   int       `json:"usage_count"`
	SuccessRate  float64   `json:"success_rate"`
	CreatedAt    time.Time `json:"created_at"`
}

// VisionSignals carry entity detections from media analysis. They feed the
// similarity bonus and the vision-derived rule tags.
type VisionSignals struct {
	Usernames []string
	URLs      []string
	Objects   []string
}

// MatchResult reports the outcome of a match-or-learn pass.
type MatchResult struct {
	Found             bool    `json:"found"`
	Confidence        float64 `json:"confidence"`
	PatternID         string  `json:"pattern_id,omitempty"`
	LearnedNewPattern bool    `json:"learned_new_pattern"`
}
