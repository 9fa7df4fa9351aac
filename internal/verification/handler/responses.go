package handler

import (
	"taskproof/internal/stamp"
	"taskproof/internal/verification"
)

type PhaseResponse struct {
	Name      string             `json:"name"`
	Points    int                `json:"points"`
	MaxPoints int                `json:"maxPoints"`
	Passed    bool               `json:"passed"`
	Note      string             `json:"note,omitempty"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`

	ValidLinks int `json:"validLinks,omitempty"`
	TotalLinks int `json:"totalLinks,omitempty"`

	Strengths []string `json:"strengths,omitempty"`
	Concerns  []string `json:"concerns,omitempty"`
}

type PatternResponse struct {
	Found             bool    `json:"found"`
	Confidence        float64 `json:"confidence"`
	PatternID         string  `json:"patternId,omitempty"`
	LearnedNewPattern bool    `json:"learnedNewPattern"`
}

type StampResponse struct {
	Hash         string `json:"hash"`
	Difficulty   int    `json:"difficulty"`
	LeadingZeros int    `json:"leadingZeros"`
	IsValid      bool   `json:"isValid"`
}

type VerifyResponse struct {
	Phases       []PhaseResponse `json:"phases"`
	OverallScore int             `json:"overallScore"`
	Passed       bool            `json:"passed"`
	Confidence   string          `json:"confidence"`
	Summary      string          `json:"summary"`
	Pattern      PatternResponse `json:"pattern"`
	Stamp        StampResponse   `json:"stamp"`
}

// FromResult shapes a verification result for the wire.
func FromResult(result *verification.Result) VerifyResponse {
	phases := make([]PhaseResponse, 0, len(result.Outcome.Phases))
	for _, p := range result.Outcome.Phases {
		phases = append(phases, PhaseResponse{
			Name:       p.Name,
			Points:     p.Points,
			MaxPoints:  p.MaxPoints,
			Passed:     p.Passed,
			Note:       p.Note,
			Breakdown:  p.Breakdown,
			ValidLinks: p.ValidLinks,
			TotalLinks: p.TotalLinks,
			Strengths:  p.Strengths,
			Concerns:   p.Concerns,
		})
	}

	return VerifyResponse{
		Phases:       phases,
		OverallScore: result.Outcome.OverallScore,
		Passed:       result.Outcome.Passed,
		Confidence:   result.Outcome.Confidence,
		Summary:      result.Outcome.Summary,
		Pattern: PatternResponse{
			Found:             result.Pattern.Found,
			Confidence:        result.Pattern.Confidence,
			PatternID:         result.Pattern.PatternID,
			LearnedNewPattern: result.Pattern.LearnedNewPattern,
		},
		Stamp: StampResponse{
			Hash:         result.Stamp.Hash,
			Difficulty:   stamp.DifficultyTarget,
			LeadingZeros: result.Stamp.LeadingZeroCount,
			IsValid:      result.Stamp.MeetsDifficulty,
		},
	}
}
