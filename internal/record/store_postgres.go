package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	dErrors "taskproof/pkg/domain-errors"
)

const (
	insertRecordQuery = `
INSERT INTO verification_records (
	id, task_id, user_id, score, passed, outcome,
	pattern_id, learned_new_pattern, stamp_leading_zeros, stamp_meets_difficulty,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	getRecordQuery = `
SELECT id, task_id, user_id, score, passed, outcome,
	pattern_id, learned_new_pattern, stamp_leading_zeros, stamp_meets_difficulty,
	created_at
FROM verification_records
WHERE id = $1`
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// PostgresStore persists verification records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, r *VerificationRecord) error {
	_, err := s.db.ExecContext(ctx, insertRecordQuery,
		r.ID, nullString(r.TaskID), r.UserID, r.Score, r.Passed, string(r.Outcome),
		nullString(r.PatternID), r.LearnedNewPattern, r.StampLeadingZeros, r.StampMeetsDifficulty,
		r.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return dErrors.New(dErrors.CodeConflict, "verification record already exists")
		}
		return fmt.Errorf("insert verification record: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*VerificationRecord, error) {
	var (
		r         VerificationRecord
		taskID    sql.NullString
		patternID sql.NullString
		outcome   string
	)
	err := s.db.QueryRowContext(ctx, getRecordQuery, id).Scan(
		&r.ID, &taskID, &r.UserID, &r.Score, &r.Passed, &outcome,
		&patternID, &r.LearnedNewPattern, &r.StampLeadingZeros, &r.StampMeetsDifficulty,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification record not found")
		}
		return nil, fmt.Errorf("get verification record: %w", err)
	}
	r.TaskID = taskID.String
	r.PatternID = patternID.String
	r.Outcome = []byte(outcome)
	return &r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
