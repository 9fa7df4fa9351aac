package pattern

import "context"

// Store persists learned patterns. Reinforce must apply the running-average
// update atomically against the backing store: concurrent reinforcements of
// the same pattern may never lose an increment.
type Store interface {
	// ListByCategory returns all patterns for a task category.
	ListByCategory(ctx context.Context, category string) ([]*EvidencePattern, error)

	// Create persists a new pattern. Creation is append-only and
	// race-tolerant; near-duplicate patterns are acceptable.
	Create(ctx context.Context, p *EvidencePattern) error

	// Reinforce atomically increments the pattern's usage count and folds
	// score (0-1) into its success rate as a count-weighted running mean.
	// Returns the updated counters.
	Reinforce(ctx context.Context, patternID string, score float64) (usageCount int, successRate float64, err error)
}
