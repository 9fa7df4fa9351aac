package pattern

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store Store) *Service {
	svc := NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	svc.newID = func() string { return "generated-id" }
	return svc
}

func TestService_LearnsWhenCategoryEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	svc := newTestService(store)

	res := svc.MatchOrLearn(ctx, MatchInput{
		SubmissionText:  "Followed @alice on twitter",
		RawUserText:     "done, followed alice",
		TaskDescription: "Follow our Twitter account",
		Score:           85,
	})

	assert.False(t, res.Found)
	assert.True(t, res.LearnedNewPattern)
	assert.Equal(t, "generated-id", res.PatternID)
	assert.InDelta(t, 0.85, res.Confidence, 1e-9)

	stored, err := store.ListByCategory(ctx, "social")
	require.NoError(t, err)
	require.Len(t, stored, 1)

	p := stored[0]
	assert.Equal(t, 1, p.UsageCount)
	assert.InDelta(t, 0.85, p.SuccessRate, 1e-9)
	assert.InDelta(t, 0.85, p.Confidence, 1e-9)
	assert.Equal(t, []string{"Followed @alice on twitter", "done, followed alice"}, p.Examples)
	assert.Contains(t, p.Rules, RuleSocialFollow)
	assert.Contains(t, p.Rules, RuleUsernameMentioned)
}

func TestService_ReinforcesCloseMatch(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	require.NoError(t, store.Create(ctx, &EvidencePattern{
		ID:           "p1",
		TaskCategory: "social",
		Examples:     []string{"followed the account on twitter"},
		UsageCount:   2,
		SuccessRate:  0.9,
	}))
	svc := newTestService(store)

	res := svc.MatchOrLearn(ctx, MatchInput{
		SubmissionText:  "followed the account on twitter",
		TaskDescription: "Follow our Twitter account",
		Score:           60,
	})

	assert.True(t, res.Found)
	assert.False(t, res.LearnedNewPattern)
	assert.Equal(t, "p1", res.PatternID)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)

	stored, err := store.ListByCategory(ctx, "social")
	require.NoError(t, err)
	require.Len(t, stored, 1, "no new pattern is created on a match")
	assert.Equal(t, 3, stored[0].UsageCount)
	assert.InDelta(t, 0.8, stored[0].SuccessRate, 1e-9) // (0.9*2 + 0.6) / 3
}

func TestService_LearnsBelowSimilarityFloor(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	// Best candidate sits at 0.55: 11 of 20 words shared.
	require.NoError(t, store.Create(ctx, &EvidencePattern{
		ID:           "near-miss",
		TaskCategory: "general",
		Examples:     []string{"w1 w2 w3 w4 w5 w6 w7 w8 w9 w10 w11 x1 x2 x3 x4"},
		UsageCount:   5,
		SuccessRate:  0.9,
	}))
	svc := newTestService(store)

	res := svc.MatchOrLearn(ctx, MatchInput{
		SubmissionText:  "w1 w2 w3 w4 w5 w6 w7 w8 w9 w10 w11 y1 y2 y3 y4 y5",
		TaskDescription: "Attend the community call",
		Score:           70,
	})

	assert.False(t, res.Found, "a 0.55 similarity must not reinforce")
	assert.True(t, res.LearnedNewPattern)

	stored, err := store.ListByCategory(ctx, "general")
	require.NoError(t, err)
	require.Len(t, stored, 2)

	for _, p := range stored {
		if p.ID == "near-miss" {
			assert.Equal(t, 5, p.UsageCount, "near-miss counters stay untouched")
			assert.InDelta(t, 0.9, p.SuccessRate, 1e-9)
		}
	}
}

func TestService_VisionBonusLiftsMatchOverFloor(t *testing.T) {
	ctx := context.Background()

	nearMiss := &EvidencePattern{
		ID:           "p1",
		TaskCategory: "social",
		Rules:        []string{RuleUsernameMentioned},
		Examples:     []string{"w1 w2 w3 w4 w5 w6 w7 w8 w9 w10 w11 x1 x2 x3 x4"},
		UsageCount:   1,
		SuccessRate:  0.7,
	}
	in := MatchInput{
		SubmissionText:  "w1 w2 w3 w4 w5 w6 w7 w8 w9 w10 w11 y1 y2 y3 y4 y5",
		TaskDescription: "Follow our Twitter account",
		Score:           80,
	}

	t.Run("without vision the base similarity stays below the floor", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Create(ctx, nearMiss))

		res := newTestService(store).MatchOrLearn(ctx, in)
		assert.False(t, res.Found)
		assert.True(t, res.LearnedNewPattern)
	})

	t.Run("vision bonus clears the floor", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Create(ctx, nearMiss))

		withVision := in
		withVision.Vision = &VisionSignals{Usernames: []string{"@alice"}}

		res := newTestService(store).MatchOrLearn(ctx, withVision)
		assert.True(t, res.Found)
		assert.Equal(t, "p1", res.PatternID)
		assert.InDelta(t, 0.65, res.Confidence, 1e-9)
	})
}

type failingStore struct{}

func (failingStore) ListByCategory(context.Context, string) ([]*EvidencePattern, error) {
	return nil, errors.New("store down")
}

func (failingStore) Create(context.Context, *EvidencePattern) error {
	return errors.New("store down")
}

func (failingStore) Reinforce(context.Context, string, float64) (int, float64, error) {
	return 0, 0, errors.New("store down")
}

func TestService_StoreFailureIsAbsorbed(t *testing.T) {
	svc := newTestService(failingStore{})

	res := svc.MatchOrLearn(context.Background(), MatchInput{
		SubmissionText:  "Followed the account",
		TaskDescription: "Follow our Twitter account",
		Score:           90,
	})

	assert.Equal(t, MatchResult{}, res, "metadata is zeroed when the store is unavailable")
}
