package verification_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taskproof/internal/audit"
	"taskproof/internal/oracle"
	"taskproof/internal/pattern"
	"taskproof/internal/record"
	"taskproof/internal/task"
	"taskproof/internal/verification"
	"taskproof/internal/verification/mocks"
	dErrors "taskproof/pkg/domain-errors"
	"taskproof/pkg/requestcontext"
)

type fixture struct {
	tasks    *task.InMemoryStore
	records  *record.InMemoryStore
	patterns *pattern.InMemoryStore
	analyzer *mocks.MockAnalyzer
	fetcher  *mocks.MockFetcher
	service  *verification.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		tasks:    task.NewInMemoryStore(),
		records:  record.NewInMemoryStore(),
		patterns: pattern.NewInMemoryStore(),
		analyzer: mocks.NewMockAnalyzer(ctrl),
		fetcher:  mocks.NewMockFetcher(ctrl),
	}
	matcher := pattern.NewService(f.patterns, logger, nil)
	f.service = verification.NewService(
		f.tasks, f.records, matcher, f.analyzer, f.fetcher, nil, logger, nil,
	)
	return f
}

func (f *fixture) seedTask(t *testing.T, id, description string) {
	t.Helper()
	require.NoError(t, f.tasks.Create(context.Background(), &task.Task{
		ID:          id,
		Description: description,
		Status:      task.StatusInProgress,
	}))
}

func phaseByName(t *testing.T, result *verification.Result, name string) verification.PhaseResult {
	t.Helper()
	for _, p := range result.Outcome.Phases {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("phase %q not in outcome", name)
	return verification.PhaseResult{}
}

func TestVerifyTask_MissingTask(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{TaskID: "nope"})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestVerifyTask_EmptySubmission(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Follow our Twitter account")

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{TaskID: "t1"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Outcome.OverallScore)
	assert.False(t, result.Outcome.Passed)
	assert.Equal(t, verification.ConfidenceLow, result.Outcome.Confidence)
	for _, p := range result.Outcome.Phases {
		assert.Equal(t, 0, p.Points, "phase %s must score zero on empty evidence", p.Name)
		assert.False(t, p.Passed)
	}
	assert.Equal(t, "missing visual proof", phaseByName(t, result, "image").Note)
	assert.Equal(t, "description too brief", phaseByName(t, result, "description").Note)

	// Failure leaves the task in progress.
	got, err := f.tasks.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, got.Status)
}

func TestVerifyTask_DescriptionLengthFallback(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Write a blog post about the launch")

	description := strings.Repeat("covered all requirements ", 6) // 150 chars

	f.analyzer.EXPECT().
		AssessDescription(gomock.Any(), gomock.Any(), description).
		Return(nil, errors.New("oracle down"))

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{
		TaskID:      "t1",
		Description: description,
	})
	require.NoError(t, err)

	desc := phaseByName(t, result, "description")
	assert.Equal(t, 15, desc.Points, "length > 100 falls back to 15")
	assert.False(t, desc.Passed)
	assert.Equal(t, "scored by length fallback", desc.Note)

	assert.Equal(t, 15, result.Outcome.OverallScore)
	assert.False(t, result.Outcome.Passed)
}

func TestVerifyTask_ShortDescriptionFallback(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Write a blog post about the launch")

	description := "finished the blog post today" // 28 chars

	f.analyzer.EXPECT().
		AssessDescription(gomock.Any(), gomock.Any(), description).
		Return(nil, errors.New("oracle down"))

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{
		TaskID:      "t1",
		Description: description,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, phaseByName(t, result, "description").Points, "length <= 100 falls back to 10")
}

func TestVerifyTask_OneOfTwoLinksTimesOut(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Open a pull request against the repository")

	links := []string{"https://example.com/ok", "https://example.com/dead"}
	f.fetcher.EXPECT().
		FetchAll(gomock.Any(), links).
		Return([]verification.FetchedLink{
			{URL: links[0], Accessible: true, Content: "merged pull request #42"},
			{URL: links[1]},
		})
	f.analyzer.EXPECT().
		ScoreLink(gomock.Any(), gomock.Any(), "merged pull request #42").
		Return(&oracle.LinkSignals{Relevance: 0.8, IndicatesCompletion: true}, nil)

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{
		TaskID: "t1",
		Links:  links,
	})
	require.NoError(t, err)

	link := phaseByName(t, result, "link")
	assert.Equal(t, 1, link.ValidLinks)
	assert.Equal(t, 2, link.TotalLinks)
	// round((1/2) * 0.8 * 25) = 10
	assert.Equal(t, 10, link.Points)
	assert.False(t, link.Passed)
	assert.Contains(t, link.Concerns, "link unreachable: https://example.com/dead")
}

func TestVerifyTask_UnscoredLinkNoted(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Open a pull request against the repository")

	links := []string{"https://example.com/a", "https://example.com/b"}
	f.fetcher.EXPECT().
		FetchAll(gomock.Any(), links).
		Return([]verification.FetchedLink{
			{URL: links[0], Accessible: true, Content: "merged pull request #42"},
			{URL: links[1], Accessible: true, Content: "release notes"},
		})
	f.analyzer.EXPECT().
		ScoreLink(gomock.Any(), gomock.Any(), "merged pull request #42").
		Return(&oracle.LinkSignals{Relevance: 0.8, IndicatesCompletion: true}, nil)
	f.analyzer.EXPECT().
		ScoreLink(gomock.Any(), gomock.Any(), "release notes").
		Return(nil, errors.New("oracle down"))

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{
		TaskID: "t1",
		Links:  links,
	})
	require.NoError(t, err)

	link := phaseByName(t, result, "link")
	assert.Equal(t, 2, link.ValidLinks, "an unscored link is still accessible")
	// round((2/2) * (0.8/2) * 25) = 10: the unscored link stays in the
	// accessible mean and the drag is surfaced as a concern.
	assert.Equal(t, 10, link.Points)
	assert.Contains(t, link.Concerns, "link could not be scored: https://example.com/b")
}

func TestVerifyTask_AuditCarriesClientMetadata(t *testing.T) {
	f := newFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sink := audit.NewInMemoryStore()
	auditor := audit.NewPublisher(sink, logger)
	matcher := pattern.NewService(f.patterns, logger, nil)
	svc := verification.NewService(
		f.tasks, f.records, matcher, f.analyzer, f.fetcher, auditor, logger, nil,
	)
	f.seedTask(t, "t1", "Follow our Twitter account")

	ctx := requestcontext.WithClientIP(context.Background(), "203.0.113.7")
	ctx = requestcontext.WithClientInfo(ctx, "Firefox/142.0 (Linux)")

	_, err := svc.VerifyTask(ctx, "u1", verification.Submission{TaskID: "t1"})
	require.NoError(t, err)

	events := sink.List()
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Equal(t, "203.0.113.7", e.ClientIP, "event %s must carry the client IP", e.Type)
		assert.Equal(t, "Firefox/142.0 (Linux)", e.ClientInfo, "event %s must carry the client info", e.Type)
	}
}

func TestVerifyTask_FullPass(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Follow our Twitter account and post proof")

	photos := []string{"https://cdn.example.com/proof.png"}
	links := []string{"https://twitter.com/worker/status/1"}
	description := "Followed the account as @worker and attached a screenshot of the confirmation."

	f.analyzer.EXPECT().
		AnalyzeImages(gomock.Any(), gomock.Any(), photos).
		Return(&oracle.ImageSignals{ContentRelevance: 1, Quality: 1, Authenticity: 1, Completeness: 1}, nil)
	f.fetcher.EXPECT().
		FetchAll(gomock.Any(), links).
		Return([]verification.FetchedLink{{URL: links[0], Accessible: true, Content: "status page"}})
	f.analyzer.EXPECT().
		ScoreLink(gomock.Any(), gomock.Any(), "status page").
		Return(&oracle.LinkSignals{Relevance: 1, IndicatesCompletion: true}, nil)
	f.analyzer.EXPECT().
		AssessDescription(gomock.Any(), gomock.Any(), description).
		Return(&oracle.DescriptionSignals{
			RequirementCoverage: 1, Clarity: 1, TechnicalAccuracy: 1, Professionalism: 1, EvidenceQuality: 1,
			Strengths: []string{"clear proof of follow"},
		}, nil)
	f.analyzer.EXPECT().
		CrossValidate(gomock.Any(), gomock.Any(), photos, gomock.Any(), description).
		Return(&oracle.CrossValidationSignals{
			Consistency: 1, Authenticity: 1, Completeness: 1,
			Confidence: "high", Recommendation: "approve",
		}, nil)

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{
		TaskID:      "t1",
		Photos:      photos,
		Links:       links,
		Description: description,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, result.Outcome.OverallScore)
	assert.True(t, result.Outcome.Passed)
	assert.Equal(t, verification.ConfidenceHigh, result.Outcome.Confidence)
	assert.Contains(t, result.Outcome.Summary, "passed verification")
	assert.Contains(t, result.Outcome.Summary, "clear proof of follow")

	// A new pattern is learned for the empty category.
	assert.True(t, result.Pattern.LearnedNewPattern)
	stored, err := f.patterns.ListByCategory(context.Background(), "social")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].UsageCount)

	// Task transitions and the record lands under the stamp hash.
	got, err := f.tasks.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, task.StatusAwaitingReview, got.Status)

	rec, err := f.records.GetByID(context.Background(), result.Stamp.Hash)
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.UserID)
	assert.True(t, rec.Passed)
	assert.Len(t, result.Stamp.Hash, 64)
}

func TestVerifyTask_CrossValidationFailsOpen(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Follow our Twitter account")

	photos := []string{"https://cdn.example.com/proof.png"}
	description := "Followed the account as @worker today"

	f.analyzer.EXPECT().
		AnalyzeImages(gomock.Any(), gomock.Any(), photos).
		Return(&oracle.ImageSignals{ContentRelevance: 0.8, Quality: 0.8, Authenticity: 0.8, Completeness: 0.8}, nil)
	f.analyzer.EXPECT().
		AssessDescription(gomock.Any(), gomock.Any(), description).
		Return(&oracle.DescriptionSignals{
			RequirementCoverage: 0.8, Clarity: 0.8, TechnicalAccuracy: 0.8, Professionalism: 0.8, EvidenceQuality: 0.8,
		}, nil)
	f.analyzer.EXPECT().
		CrossValidate(gomock.Any(), gomock.Any(), photos, gomock.Any(), description).
		Return(nil, errors.New("oracle down"))

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{
		TaskID:      "t1",
		Photos:      photos,
		Description: description,
	})
	require.NoError(t, err)

	// Documented behavior: the cross-validation outage awards a fixed 10/20
	// treated as passed, unlike the fail-closed image and link phases.
	cross := phaseByName(t, result, "cross_validation")
	assert.Equal(t, 10, cross.Points)
	assert.True(t, cross.Passed)
}

func TestVerifyTask_CrossValidationNeedsPhotosAndDescription(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Follow our Twitter account")

	description := "Followed the account as @worker today"
	f.analyzer.EXPECT().
		AssessDescription(gomock.Any(), gomock.Any(), description).
		Return(&oracle.DescriptionSignals{
			RequirementCoverage: 0.8, Clarity: 0.8, TechnicalAccuracy: 0.8, Professionalism: 0.8, EvidenceQuality: 0.8,
		}, nil)

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{
		TaskID:      "t1",
		Description: description,
	})
	require.NoError(t, err)

	cross := phaseByName(t, result, "cross_validation")
	assert.Equal(t, 0, cross.Points, "no oracle call without both photos and description")
	assert.False(t, cross.Passed)
}

func TestVerifyTask_ScoreBounds(t *testing.T) {
	f := newFixture(t)
	f.seedTask(t, "t1", "Attend the community call")

	photos := []string{"https://cdn.example.com/a.png"}
	description := "Joined the call and asked two questions about the roadmap."

	f.analyzer.EXPECT().
		AnalyzeImages(gomock.Any(), gomock.Any(), photos).
		Return(&oracle.ImageSignals{ContentRelevance: 0.5, Quality: 0.3, Authenticity: 0.9, Completeness: 0.4}, nil)
	f.analyzer.EXPECT().
		AssessDescription(gomock.Any(), gomock.Any(), description).
		Return(&oracle.DescriptionSignals{
			RequirementCoverage: 0.6, Clarity: 0.7, TechnicalAccuracy: 0.5, Professionalism: 0.9, EvidenceQuality: 0.4,
		}, nil)
	f.analyzer.EXPECT().
		CrossValidate(gomock.Any(), gomock.Any(), photos, gomock.Any(), description).
		Return(&oracle.CrossValidationSignals{Consistency: 0.5, Authenticity: 0.6, Completeness: 0.4, Confidence: "medium"}, nil)

	result, err := f.service.VerifyTask(context.Background(), "u1", verification.Submission{
		TaskID:      "t1",
		Photos:      photos,
		Description: description,
	})
	require.NoError(t, err)

	sum := 0
	for _, p := range result.Outcome.Phases {
		assert.GreaterOrEqual(t, p.Points, 0)
		assert.LessOrEqual(t, p.Points, p.MaxPoints)
		sum += p.Points
	}
	assert.Equal(t, sum, result.Outcome.OverallScore)
	assert.GreaterOrEqual(t, result.Outcome.OverallScore, 0)
	assert.LessOrEqual(t, result.Outcome.OverallScore, 100)
	assert.Equal(t, result.Outcome.OverallScore >= verification.PassScore, result.Outcome.Passed)
}
