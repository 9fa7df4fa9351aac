package verification

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"taskproof/internal/audit"
	"taskproof/internal/oracle"
	"taskproof/internal/pattern"
	"taskproof/internal/record"
	"taskproof/internal/stamp"
	"taskproof/internal/task"
	"taskproof/pkg/requestcontext"
)

// Analyzer is the typed oracle capability the pipeline consumes. Any error
// is absorbed by the calling phase.
type Analyzer interface {
	AnalyzeImages(ctx context.Context, taskDescription string, photoURIs []string) (*oracle.ImageSignals, error)
	ScoreLink(ctx context.Context, taskDescription, linkContent string) (*oracle.LinkSignals, error)
	AssessDescription(ctx context.Context, taskDescription, description string) (*oracle.DescriptionSignals, error)
	CrossValidate(ctx context.Context, taskDescription string, photoURIs []string, linkSummaries []string, description string) (*oracle.CrossValidationSignals, error)
	AnalyzeMedia(ctx context.Context, fileURI, fileType, userText, enhancedText string) (*oracle.MediaSignals, error)
}

// Fetcher retrieves submitted links. Per-link failures surface on the
// results, never as an error.
type Fetcher interface {
	FetchAll(ctx context.Context, links []string) []FetchedLink
}

// PatternMatcher is the match-or-learn capability of the pattern engine.
type PatternMatcher interface {
	MatchOrLearn(ctx context.Context, in pattern.MatchInput) pattern.MatchResult
}

// Service runs both verification flows: the evidence scoring pipeline for
// task submissions and the media analysis flow for single files.
type Service struct {
	tasks    task.Store
	records  record.Store
	patterns PatternMatcher
	analyzer Analyzer
	fetcher  Fetcher
	auditor  *audit.Publisher
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	now      func() time.Time
}

func NewService(
	tasks task.Store,
	records record.Store,
	patterns PatternMatcher,
	analyzer Analyzer,
	fetcher Fetcher,
	auditor *audit.Publisher,
	logger *slog.Logger,
	metrics *Metrics,
) *Service {
	return &Service{
		tasks:    tasks,
		records:  records,
		patterns: patterns,
		analyzer: analyzer,
		fetcher:  fetcher,
		auditor:  auditor,
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer("taskproof/verification"),
		now:      time.Now,
	}
}

// VerifyTask scores a submission against its task. Only a missing task is a
// request failure; every evidence or oracle problem degrades the affected
// phase and the outcome is still produced.
func (s *Service) VerifyTask(ctx context.Context, userID string, sub Submission) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "verification.verify_task",
		trace.WithAttributes(attribute.String("task.id", sub.TaskID)))
	defer span.End()

	t, err := s.tasks.GetByID(ctx, sub.TaskID)
	if err != nil {
		return nil, err
	}

	// Image, link and description phases are mutually independent and run
	// concurrently. Cross-validation feeds on their presence and runs after.
	var (
		imageRes PhaseResult
		linkRes  PhaseResult
		descRes  PhaseResult

		linkSummaries []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		imageRes = s.scoreImages(gctx, t.Description, sub.Photos)
		return nil
	})
	g.Go(func() error {
		linkRes, linkSummaries = s.scoreLinks(gctx, t.Description, sub.Links)
		return nil
	})
	g.Go(func() error {
		descRes = s.scoreDescription(gctx, t.Description, sub.Description)
		return nil
	})
	_ = g.Wait()

	crossRes := s.scoreCrossValidation(ctx, t.Description, sub, linkSummaries)

	phases := []PhaseResult{imageRes, linkRes, descRes, crossRes}
	overall := 0
	for _, p := range phases {
		overall += p.Points
	}
	passed := overall >= PassScore

	outcome := Outcome{
		Phases:       phases,
		OverallScore: overall,
		Passed:       passed,
		Confidence:   confidenceFor(overall),
		Summary:      buildSummary(overall, passed, phases),
	}

	matchRes := s.patterns.MatchOrLearn(ctx, pattern.MatchInput{
		SubmissionText:  sub.Description,
		RawUserText:     sub.Description,
		TaskDescription: t.Description,
		Score:           float64(overall),
	})

	minted := stamp.Mint(stampContent(sub), s.now())

	result := &Result{
		Outcome: outcome,
		Pattern: matchRes,
		Stamp:   minted,
	}

	s.persist(ctx, userID, sub.TaskID, result, true)
	s.publishAudit(ctx, userID, sub.TaskID, result)
	s.metrics.ObserveVerification("task", passed, overall)

	span.SetAttributes(
		attribute.Int("verification.score", overall),
		attribute.Bool("verification.passed", passed),
	)
	return result, nil
}

// persist writes the verification record and, for the task flow, attaches
// the outcome to the task. Store failures are absorbed: the outcome was
// already computed and belongs to the caller.
func (s *Service) persist(ctx context.Context, userID, taskID string, result *Result, attachToTask bool) {
	outcomeJSON, err := json.Marshal(result)
	if err != nil {
		s.logger.ErrorContext(ctx, "verification result not serializable", "error", err)
		return
	}

	rec := &record.VerificationRecord{
		ID:                   result.Stamp.ID(),
		TaskID:               taskID,
		UserID:               userID,
		Score:                float64(result.Outcome.OverallScore),
		Passed:               result.Outcome.Passed,
		Outcome:              outcomeJSON,
		PatternID:            result.Pattern.PatternID,
		LearnedNewPattern:    result.Pattern.LearnedNewPattern,
		StampLeadingZeros:    result.Stamp.LeadingZeroCount,
		StampMeetsDifficulty: result.Stamp.MeetsDifficulty,
		CreatedAt:            s.now().UTC(),
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		s.logger.WarnContext(ctx, "verification record not persisted",
			"stamp_hash", rec.ID,
			"error", err,
		)
	}

	if attachToTask && taskID != "" {
		if err := s.tasks.AttachVerification(ctx, taskID, outcomeJSON, result.Outcome.Passed); err != nil {
			s.logger.WarnContext(ctx, "verification outcome not attached to task",
				"task_id", taskID,
				"error", err,
			)
		}
	}
}

func (s *Service) publishAudit(ctx context.Context, userID, taskID string, result *Result) {
	if s.auditor == nil {
		return
	}

	clientIP := requestcontext.ClientIP(ctx)
	clientInfo := requestcontext.ClientInfo(ctx)
	if clientInfo == "" {
		clientInfo = requestcontext.UserAgent(ctx)
	}

	payload, _ := json.Marshal(map[string]any{
		"score":      result.Outcome.OverallScore,
		"passed":     result.Outcome.Passed,
		"confidence": result.Outcome.Confidence,
		"stamp_hash": result.Stamp.Hash,
	})
	s.auditor.Emit(ctx, audit.Event{
		Type:       audit.EventVerificationCompleted,
		UserID:     userID,
		TaskID:     taskID,
		ClientIP:   clientIP,
		ClientInfo: clientInfo,
		Payload:    payload,
	})

	switch {
	case result.Pattern.LearnedNewPattern:
		s.auditor.Emit(ctx, audit.Event{
			Type:       audit.EventPatternLearned,
			UserID:     userID,
			TaskID:     taskID,
			ClientIP:   clientIP,
			ClientInfo: clientInfo,
			Payload:    json.RawMessage(`{"pattern_id":"` + result.Pattern.PatternID + `"}`),
		})
	case result.Pattern.Found:
		s.auditor.Emit(ctx, audit.Event{
			Type:       audit.EventPatternReinforced,
			UserID:     userID,
			TaskID:     taskID,
			ClientIP:   clientIP,
			ClientInfo: clientInfo,
			Payload:    json.RawMessage(`{"pattern_id":"` + result.Pattern.PatternID + `"}`),
		})
	}
}

func stampContent(sub Submission) string {
	parts := make([]string, 0, len(sub.Photos)+len(sub.Links)+2)
	parts = append(parts, sub.TaskID)
	parts = append(parts, sub.Photos...)
	parts = append(parts, sub.Links...)
	parts = append(parts, sub.Description)
	return strings.Join(parts, "|")
}
