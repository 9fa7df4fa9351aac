// Package verification implements the evidence scoring pipeline: weighted
// multi-source evidence fusion over a worker's photos, links and written
// description, with per-phase fault tolerance and a fixed pass threshold.
package verification

import (
	"taskproof/internal/pattern"
	"taskproof/internal/stamp"
)

// Phase point budgets and pass minima. The four maxima sum to 100 so the
// overall score needs no clamping.
const (
	ImageMaxPoints = 30
	ImagePassMin   = 20

	LinkMaxPoints = 25
	LinkPassMin   = 15

	DescriptionMaxPoints = 25
	DescriptionPassMin   = 17

	CrossValidationMaxPoints = 20
	CrossValidationPassMin   = 14
)

// PassScore is the overall score at or above which a submission passes.
const PassScore = 70

// Confidence bands over the overall score.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"

	highConfidenceScore   = 85
	mediumConfidenceScore = 70
)

// minDescriptionLength is the length a description must exceed to be worth
// sending to the oracle.
const minDescriptionLength = 20

// Submission is the evidence a worker attached to a task. Absence of any
// category is valid input; it zeroes that phase, never errors.
type Submission struct {
	TaskID      string
	Photos      []string
	Links       []string
	Description string
}

// MediaSubmission is the input of the sibling media verification flow.
type MediaSubmission struct {
	FileURI      string
	FileType     string
	UserText     string
	EnhancedText string
}

// PhaseResult is one evidence category's outcome. Points never exceed
// MaxPoints.
type PhaseResult struct {
	Name      string             `json:"name"`
	Points    int                `json:"points"`
	MaxPoints int                `json:"max_points"`
	Passed    bool               `json:"passed"`
	Note      string             `json:"note,omitempty"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`

	// Link phase bookkeeping.
	ValidLinks int `json:"valid_links,omitempty"`
	TotalLinks int `json:"total_links,omitempty"`

	Strengths []string `json:"strengths,omitempty"`
	Concerns  []string `json:"concerns,omitempty"`
}

// Outcome aggregates all phase results for one submission attempt. It is
// computed once and never mutated; a resubmission produces a new outcome.
type Outcome struct {
	Phases       []PhaseResult `json:"phases"`
	OverallScore int           `json:"overall_score"`
	Passed       bool          `json:"passed"`
	Confidence   string        `json:"confidence"`
	Summary      string        `json:"summary"`
}

// Result is the full response of either verification flow: the outcome plus
// pattern-match metadata and the admission stamp.
type Result struct {
	Outcome Outcome             `json:"outcome"`
	Pattern pattern.MatchResult `json:"pattern"`
	Stamp   stamp.Stamp         `json:"stamp"`
}

func confidenceFor(score int) string {
	switch {
	case score >= highConfidenceScore:
		return ConfidenceHigh
	case score >= mediumConfidenceScore:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
