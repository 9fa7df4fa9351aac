package pattern

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// similarityFloor is the minimum similarity required to reinforce an
// existing pattern. Below it a near-match is treated as a new pattern:
// false reinforcement of a poor match costs more than proliferation.
const similarityFloor = 0.6

// MatchInput carries one submission's text plus the signals the matcher
// uses to retrieve and score candidate patterns.
type MatchInput struct {
	SubmissionText  string
	RawUserText     string
	TaskDescription string
	// Score is the verification score on the 0-100 scale; it seeds the
	// confidence of a learned pattern and feeds the running success rate
	// of a reinforced one.
	Score  float64
	Vision *VisionSignals
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
	newID   func() string
}

func NewService(store Store, logger *slog.Logger, metrics *Metrics) *Service {
	return &Service{
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// MatchOrLearn retrieves the stored patterns for the submission's inferred
// category and either reinforces the best match or learns a new pattern.
// Confidence means different things per branch: on a match it is the
// similarity to the reinforced pattern, on a learn it is the new pattern's
// seed confidence (score/100) with Found false.
// Store failures are absorbed: the caller always gets a result, with
// pattern metadata zeroed when persistence was skipped.
func (s *Service) MatchOrLearn(ctx context.Context, in MatchInput) MatchResult {
	category := InferCategory(in.TaskDescription)

	candidates, err := s.store.ListByCategory(ctx, category)
	if err != nil {
		s.logger.Warn("pattern lookup skipped",
			slog.String("category", category),
			slog.String("error", err.Error()))
		s.metrics.ObserveStoreFailure()
		s.metrics.ObserveMatch("skipped")
		return MatchResult{}
	}

	var (
		best    *EvidencePattern
		bestSim float64
	)
	for _, p := range candidates {
		sim := similarity(in.SubmissionText, p, in.Vision)
		if best == nil || sim > bestSim {
			best, bestSim = p, sim
		}
	}

	if best != nil && bestSim >= similarityFloor {
		return s.reinforce(ctx, best, bestSim, in.Score)
	}
	return s.learn(ctx, category, in)
}

func (s *Service) reinforce(ctx context.Context, p *EvidencePattern, sim, score float64) MatchResult {
	usageCount, successRate, err := s.store.Reinforce(ctx, p.ID, score/100)
	if err != nil {
		s.logger.Warn("pattern reinforcement skipped",
			slog.String("pattern_id", p.ID),
			slog.String("error", err.Error()))
		s.metrics.ObserveStoreFailure()
		s.metrics.ObserveMatch("skipped")
		return MatchResult{}
	}

	s.logger.Info("pattern reinforced",
		slog.String("pattern_id", p.ID),
		slog.String("category", p.TaskCategory),
		slog.Float64("similarity", sim),
		slog.Int("usage_count", usageCount),
		slog.Float64("success_rate", successRate))
	s.metrics.ObserveMatch("matched")

	return MatchResult{
		Found:      true,
		Confidence: sim,
		PatternID:  p.ID,
	}
}

func (s *Service) learn(ctx context.Context, category string, in MatchInput) MatchResult {
	confidence := in.Score / 100
	p := &EvidencePattern{
		ID:           s.newID(),
		TaskCategory: category,
		Rules:        ExtractRules(in.SubmissionText, in.Vision),
		Confidence:   confidence,
		Examples:     []string{in.SubmissionText, in.RawUserText},
		UsageCount:   1,
		SuccessRate:  confidence,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.store.Create(ctx, p); err != nil {
		s.logger.Warn("pattern learning skipped",
			slog.String("category", category),
			slog.String("error", err.Error()))
		s.metrics.ObserveStoreFailure()
		s.metrics.ObserveMatch("skipped")
		return MatchResult{}
	}

	s.logger.Info("pattern learned",
		slog.String("pattern_id", p.ID),
		slog.String("category", category),
		slog.Int("rules", len(p.Rules)),
		slog.Float64("confidence", confidence))
	s.metrics.ObserveMatch("learned")
	s.metrics.ObserveLearned()

	return MatchResult{
		Found:             false,
		Confidence:        confidence,
		PatternID:         p.ID,
		LearnedNewPattern: true,
	}
}
