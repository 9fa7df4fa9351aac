package record

import "context"

// Store is the insert-only verification trail. Records are never updated
// or deleted by the engine.
type Store interface {
	// Insert persists a record under its stamp hash.
	Insert(ctx context.Context, r *VerificationRecord) error

	// GetByID fetches a record by stamp hash.
	GetByID(ctx context.Context, id string) (*VerificationRecord, error)
}
