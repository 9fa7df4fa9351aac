package verification

import (
	"context"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"taskproof/internal/pattern"
	"taskproof/internal/stamp"
)

const phaseMedia = "media"

// mediaFallbackScore is awarded when the oracle cannot analyze the file.
// Deterministic so resubmitting during an outage scores the same.
const mediaFallbackScore = 50

// VerifyMedia runs the sibling verification flow for a single submitted
// file: oracle media analysis, score, pattern match-or-learn with vision
// signals, admission stamp, verification record.
func (s *Service) VerifyMedia(ctx context.Context, userID string, sub MediaSubmission) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "verification.verify_media",
		trace.WithAttributes(attribute.String("media.file_type", sub.FileType)))
	defer span.End()

	phase := PhaseResult{Name: phaseMedia, MaxPoints: 100}

	var vision *pattern.VisionSignals
	signals, err := s.analyzer.AnalyzeMedia(ctx, sub.FileURI, sub.FileType, sub.UserText, sub.EnhancedText)
	if err != nil {
		s.logger.WarnContext(ctx, "media analysis unavailable", "error", err)
		s.metrics.ObservePhaseFailure(phaseMedia)
		phase.Points = mediaFallbackScore
		phase.Note = "media analysis unavailable, fallback score awarded"
	} else {
		phase.Points = int(math.Round((signals.Authenticity + signals.Relevance) / 2 * 100))
		phase.Breakdown = map[string]float64{
			"authenticity": signals.Authenticity,
			"relevance":    signals.Relevance,
		}
		vision = &pattern.VisionSignals{
			Usernames: signals.Usernames,
			URLs:      signals.URLs,
			Objects:   signals.Objects,
		}
	}

	overall := phase.Points
	passed := overall >= PassScore
	phase.Passed = passed

	submissionText := sub.EnhancedText
	if submissionText == "" {
		submissionText = sub.UserText
	}

	matchRes := s.patterns.MatchOrLearn(ctx, pattern.MatchInput{
		SubmissionText:  submissionText,
		RawUserText:     sub.UserText,
		TaskDescription: submissionText,
		Score:           float64(overall),
		Vision:          vision,
	})

	minted := stamp.Mint(sub.FileURI+"|"+sub.UserText, s.now())

	phases := []PhaseResult{phase}
	result := &Result{
		Outcome: Outcome{
			Phases:       phases,
			OverallScore: overall,
			Passed:       passed,
			Confidence:   confidenceFor(overall),
			Summary:      buildSummary(overall, passed, phases),
		},
		Pattern: matchRes,
		Stamp:   minted,
	}

	s.persist(ctx, userID, "", result, false)
	s.publishAudit(ctx, userID, "", result)
	s.metrics.ObserveVerification("media", passed, overall)

	span.SetAttributes(
		attribute.Int("verification.score", overall),
		attribute.Bool("verification.passed", passed),
	)
	return result, nil
}
