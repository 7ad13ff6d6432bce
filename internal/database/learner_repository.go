package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabplan/pkg/models"
)

const learnerColumns = "learner_id, chat_id, plan_start, words_per_day, reviews_per_day, notification_hour, is_active"

// LearnerRepository stores learner plan settings
type LearnerRepository struct {
	db *sqlx.DB
}

// NewLearnerRepository creates a new repository instance
func NewLearnerRepository(db *sqlx.DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// GetSettings returns the settings of a learner, nil if there are none
func (r *LearnerRepository) GetSettings(ctx context.Context, learnerID int64) (*models.LearnerSettings, error) {
	var row learnerRow
	query := r.db.Rebind("SELECT " + learnerColumns + " FROM learners WHERE learner_id = ?")
	err := r.db.GetContext(ctx, &row, query, learnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learner settings: %w", err)
	}

	settings, err := row.model()
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save inserts or updates learner settings
func (r *LearnerRepository) Save(ctx context.Context, s models.LearnerSettings) error {
	if err := s.Quota.Validate(); err != nil {
		return fmt.Errorf("invalid quota: %w", err)
	}
	if s.NotificationHour < 0 || s.NotificationHour > 23 {
		return fmt.Errorf("invalid notification hour %d", s.NotificationHour)
	}

	query := r.db.Rebind(`
		INSERT INTO learners (` + learnerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id) DO UPDATE SET
			chat_id = excluded.chat_id,
			plan_start = excluded.plan_start,
			words_per_day = excluded.words_per_day,
			reviews_per_day = excluded.reviews_per_day,
			notification_hour = excluded.notification_hour,
			is_active = excluded.is_active
	`)
	_, err := r.db.ExecContext(ctx, query,
		s.LearnerID,
		s.ChatID,
		formatTime(s.PlanStart),
		s.Quota.NewWordsPerDay,
		s.Quota.ReviewsPerDay,
		s.NotificationHour,
		s.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to save learner settings: %w", err)
	}
	return nil
}

// SetActive enables or disables reminders for a learner
func (r *LearnerRepository) SetActive(ctx context.Context, learnerID int64, active bool) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE learners SET is_active = ? WHERE learner_id = ?"), active, learnerID)
	if err != nil {
		return fmt.Errorf("failed to update learner: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("learner %d: %w", learnerID, ErrNotFound)
	}
	return nil
}

// ListActive returns all learners with reminders enabled
func (r *LearnerRepository) ListActive(ctx context.Context) ([]models.LearnerSettings, error) {
	var rows []learnerRow
	query := r.db.Rebind("SELECT " + learnerColumns + " FROM learners WHERE is_active = ? ORDER BY learner_id")
	if err := r.db.SelectContext(ctx, &rows, query, true); err != nil {
		return nil, fmt.Errorf("failed to get active learners: %w", err)
	}

	learners := make([]models.LearnerSettings, 0, len(rows))
	for _, row := range rows {
		s, err := row.model()
		if err != nil {
			return nil, err
		}
		learners = append(learners, s)
	}
	return learners, nil
}
