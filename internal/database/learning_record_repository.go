package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabplan/pkg/models"
)

const recordColumns = "learner_id, word_id, strength, repetition_count, lapses, attempts, last_reviewed_at, next_due_at"

// LearningRecordRepository stores per-learner memory state of words
type LearningRecordRepository struct {
	db *sqlx.DB
}

// NewLearningRecordRepository creates a new repository instance
func NewLearningRecordRepository(db *sqlx.DB) *LearningRecordRepository {
	return &LearningRecordRepository{db: db}
}

// Get returns the record of a word, nil if the learner never answered it
func (r *LearningRecordRepository) Get(ctx context.Context, learnerID, wordID int64) (*models.LearningRecord, error) {
	var row learningRecordRow
	query := r.db.Rebind("SELECT " + recordColumns + " FROM learning_records WHERE learner_id = ? AND word_id = ?")
	err := r.db.GetContext(ctx, &row, query, learnerID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learning record: %w", err)
	}

	rec, err := row.model()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Put inserts or replaces a record
func (r *LearningRecordRepository) Put(ctx context.Context, rec models.LearningRecord) error {
	query := `
		INSERT INTO learning_records (` + recordColumns + `)
		VALUES (:learner_id, :word_id, :strength, :repetition_count, :lapses, :attempts, :last_reviewed_at, :next_due_at)
		ON CONFLICT (learner_id, word_id) DO UPDATE SET
			strength = excluded.strength,
			repetition_count = excluded.repetition_count,
			lapses = excluded.lapses,
			attempts = excluded.attempts,
			last_reviewed_at = excluded.last_reviewed_at,
			next_due_at = excluded.next_due_at
	`
	if _, err := r.db.NamedExecContext(ctx, query, newLearningRecordRow(rec)); err != nil {
		return fmt.Errorf("failed to save learning record: %w", err)
	}
	return nil
}

// ListByLearner returns all records of a learner ordered by word
func (r *LearningRecordRepository) ListByLearner(ctx context.Context, learnerID int64) ([]models.LearningRecord, error) {
	var rows []learningRecordRow
	query := r.db.Rebind("SELECT " + recordColumns + " FROM learning_records WHERE learner_id = ? ORDER BY word_id")
	if err := r.db.SelectContext(ctx, &rows, query, learnerID); err != nil {
		return nil, fmt.Errorf("failed to get learning records: %w", err)
	}

	records := make([]models.LearningRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.model()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DeleteByLearner removes all records of a learner
func (r *LearningRecordRepository) DeleteByLearner(ctx context.Context, learnerID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM learning_records WHERE learner_id = ?"), learnerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete learning records: %w", err)
	}
	return result.RowsAffected()
}
