//go:build integration

package pattern

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "taskproof/pkg/domain-errors"
	"taskproof/pkg/testutil/containers"
)

func TestRedisStore_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	store := NewRedisStore(rc.Client)

	require.NoError(t, rc.FlushAll(ctx))

	p := &EvidencePattern{
		ID:           "p1",
		TaskCategory: "social",
		Rules:        []string{RuleSocialFollow, RuleUsernameMentioned},
		Confidence:   0.8,
		Examples:     []string{"followed the account", "done"},
		UsageCount:   1,
		SuccessRate:  0.8,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, store.Create(ctx, p))

	t.Run("round trips through the category index", func(t *testing.T) {
		got, err := store.ListByCategory(ctx, "social")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, p.Rules, got[0].Rules)
		assert.Equal(t, p.Examples, got[0].Examples)
		assert.Equal(t, 1, got[0].UsageCount)
		assert.InDelta(t, 0.8, got[0].SuccessRate, 1e-9)
		assert.True(t, p.CreatedAt.Equal(got[0].CreatedAt))
	})

	t.Run("reinforce recomputes the running mean server-side", func(t *testing.T) {
		count, rate, err := store.Reinforce(ctx, "p1", 0.6)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.InDelta(t, 0.7, rate, 1e-9)
	})

	t.Run("missing pattern is not found", func(t *testing.T) {
		_, _, err := store.Reinforce(ctx, "missing", 0.5)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func TestRedisStore_ConcurrentReinforce_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	store := NewRedisStore(rc.Client)

	require.NoError(t, rc.FlushAll(ctx))
	require.NoError(t, store.Create(ctx, &EvidencePattern{
		ID:           "p1",
		TaskCategory: "social",
		UsageCount:   1,
		SuccessRate:  0.5,
	}))

	const workers = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _, err := store.Reinforce(ctx, "p1", 0.5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.ListByCategory(ctx, "social")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1+workers, got[0].UsageCount, "the Lua script must never lose an increment")
	assert.InDelta(t, 0.5, got[0].SuccessRate, 1e-9)
}
