package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dErrors "taskproof/pkg/domain-errors"
)

const (
	getTaskQuery = `
SELECT id, title, description, status, verification_result, created_at, updated_at
FROM tasks
WHERE id = $1`

	insertTaskQuery = `
INSERT INTO tasks (id, title, description, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`

	getTaskStatusForUpdateQuery = `
SELECT status
FROM tasks
WHERE id = $1
FOR UPDATE`

	attachVerificationQuery = `
UPDATE tasks
SET verification_result = $2, status = $3, updated_at = $4
WHERE id = $1`
)

// PostgresStore persists tasks in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Task, error) {
	var (
		t      Task
		result sql.NullString
	)
	err := s.db.QueryRowContext(ctx, getTaskQuery, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &result, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "task not found")
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	if result.Valid {
		t.VerificationResult = json.RawMessage(result.String)
	}
	return &t, nil
}

func (s *PostgresStore) Create(ctx context.Context, t *Task) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, insertTaskQuery,
		t.ID, t.Title, t.Description, t.Status, now,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// AttachVerification writes the outcome inside a transaction with the task
// row locked, so the status transition never races a concurrent attach.
func (s *PostgresStore) AttachVerification(ctx context.Context, id string, result json.RawMessage, passed bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attach verification tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var status Status
	if err := tx.QueryRowContext(ctx, getTaskStatusForUpdateQuery, id).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dErrors.New(dErrors.CodeNotFound, "task not found")
		}
		return fmt.Errorf("lock task row: %w", err)
	}

	if passed && status == StatusInProgress {
		status = StatusAwaitingReview
	}

	if _, err := tx.ExecContext(ctx, attachVerificationQuery,
		id, string(result), status, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("attach verification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attach verification tx: %w", err)
	}
	return nil
}
