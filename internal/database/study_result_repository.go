package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabplan/pkg/models"
)

// StudyResultRepository handles database operations for study results
type StudyResultRepository struct {
	db *sqlx.DB
}

// NewStudyResultRepository creates a new repository instance
func NewStudyResultRepository(db *sqlx.DB) *StudyResultRepository {
	return &StudyResultRepository{db: db}
}

// ResultSummary aggregates the study results of a learner
type ResultSummary struct {
	Sessions     int     `db:"sessions"`
	TotalWords   int     `db:"total_words"`
	CorrectWords int     `db:"correct_words"`
	Accuracy     float64 `db:"-"`
}

// SaveResult inserts a study result and sets its ID
func (r *StudyResultRepository) SaveResult(ctx context.Context, result *models.StudyResult) error {
	query := r.db.Rebind(`
		INSERT INTO study_results (
			learner_id, session_id, mode, total_words, correct_words,
			wrong_words, duration_ms, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query,
		result.LearnerID,
		result.SessionID,
		result.Mode,
		result.TotalWords,
		result.CorrectWords,
		result.WrongWords,
		result.Duration.Milliseconds(),
		formatTime(result.FinishedAt),
	).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("failed to create study result: %w", err)
	}
	return nil
}

// ListByLearner returns the latest results of a learner, newest first
func (r *StudyResultRepository) ListByLearner(ctx context.Context, learnerID int64, limit int) ([]models.StudyResult, error) {
	var rows []studyResultRow
	query := r.db.Rebind(`
		SELECT id, learner_id, session_id, mode, total_words, correct_words, wrong_words, duration_ms, finished_at
		FROM study_results
		WHERE learner_id = ?
		ORDER BY finished_at DESC, id DESC
		LIMIT ?
	`)
	if err := r.db.SelectContext(ctx, &rows, query, learnerID, limit); err != nil {
		return nil, fmt.Errorf("failed to get study results: %w", err)
	}

	results := make([]models.StudyResult, 0, len(rows))
	for _, row := range rows {
		res, err := row.model()
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Summary returns totals over all results of a learner
func (r *StudyResultRepository) Summary(ctx context.Context, learnerID int64) (ResultSummary, error) {
	var summary ResultSummary
	query := r.db.Rebind(`
		SELECT COUNT(*) AS sessions,
			COALESCE(SUM(total_words), 0) AS total_words,
			COALESCE(SUM(correct_words), 0) AS correct_words
		FROM study_results
		WHERE learner_id = ?
	`)
	if err := r.db.GetContext(ctx, &summary, query, learnerID); err != nil {
		return ResultSummary{}, fmt.Errorf("failed to get study summary: %w", err)
	}
	if summary.TotalWords > 0 {
		summary.Accuracy = float64(summary.CorrectWords) / float64(summary.TotalWords)
	}
	return summary, nil
}
