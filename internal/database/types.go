package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/vocabplan/pkg/models"
)

// timeLayout is fixed width so stored times sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", s, err)
	}
	// Day boundaries are computed in local time
	return t.Local(), nil
}

// learningRecordRow is the stored form of models.LearningRecord
type learningRecordRow struct {
	LearnerID       int64          `db:"learner_id"`
	WordID          int64          `db:"word_id"`
	Strength        float64        `db:"strength"`
	RepetitionCount int            `db:"repetition_count"`
	Lapses          int            `db:"lapses"`
	Attempts        int            `db:"attempts"`
	LastReviewedAt  string         `db:"last_reviewed_at"`
	NextDueAt       sql.NullString `db:"next_due_at"`
}

func newLearningRecordRow(rec models.LearningRecord) learningRecordRow {
	row := learningRecordRow{
		LearnerID:       rec.LearnerID,
		WordID:          rec.WordID,
		Strength:        rec.Strength,
		RepetitionCount: rec.RepetitionCount,
		Lapses:          rec.Lapses,
		Attempts:        rec.Attempts,
		LastReviewedAt:  formatTime(rec.LastReviewedAt),
	}
	if rec.NextDueAt != nil {
		row.NextDueAt = sql.NullString{String: formatTime(*rec.NextDueAt), Valid: true}
	}
	return row
}

func (r learningRecordRow) model() (models.LearningRecord, error) {
	rec := models.LearningRecord{
		LearnerID:       r.LearnerID,
		WordID:          r.WordID,
		Strength:        r.Strength,
		RepetitionCount: r.RepetitionCount,
		Lapses:          r.Lapses,
		Attempts:        r.Attempts,
	}
	var err error
	if rec.LastReviewedAt, err = parseTime(r.LastReviewedAt); err != nil {
		return models.LearningRecord{}, err
	}
	if r.NextDueAt.Valid {
		due, err := parseTime(r.NextDueAt.String)
		if err != nil {
			return models.LearningRecord{}, err
		}
		rec.NextDueAt = &due
	}
	return rec, nil
}

// learnerRow is the stored form of models.LearnerSettings
type learnerRow struct {
	LearnerID        int64  `db:"learner_id"`
	ChatID           int64  `db:"chat_id"`
	PlanStart        string `db:"plan_start"`
	WordsPerDay      int    `db:"words_per_day"`
	ReviewsPerDay    int    `db:"reviews_per_day"`
	NotificationHour int    `db:"notification_hour"`
	IsActive         bool   `db:"is_active"`
}

func (r learnerRow) model() (models.LearnerSettings, error) {
	start, err := parseTime(r.PlanStart)
	if err != nil {
		return models.LearnerSettings{}, err
	}
	return models.LearnerSettings{
		LearnerID:        r.LearnerID,
		ChatID:           r.ChatID,
		PlanStart:        start,
		Quota:            models.Quota{NewWordsPerDay: r.WordsPerDay, ReviewsPerDay: r.ReviewsPerDay},
		NotificationHour: r.NotificationHour,
		Active:           r.IsActive,
	}, nil
}

// studyResultRow is the stored form of models.StudyResult
type studyResultRow struct {
	ID           int64  `db:"id"`
	LearnerID    int64  `db:"learner_id"`
	SessionID    string `db:"session_id"`
	Mode         string `db:"mode"`
	TotalWords   int    `db:"total_words"`
	CorrectWords int    `db:"correct_words"`
	WrongWords   int    `db:"wrong_words"`
	DurationMS   int64  `db:"duration_ms"`
	FinishedAt   string `db:"finished_at"`
}

func (r studyResultRow) model() (models.StudyResult, error) {
	finished, err := parseTime(r.FinishedAt)
	if err != nil {
		return models.StudyResult{}, err
	}
	return models.StudyResult{
		ID:           r.ID,
		LearnerID:    r.LearnerID,
		SessionID:    r.SessionID,
		Mode:         r.Mode,
		TotalWords:   r.TotalWords,
		CorrectWords: r.CorrectWords,
		WrongWords:   r.WrongWords,
		Duration:     time.Duration(r.DurationMS) * time.Millisecond,
		FinishedAt:   finished,
	}, nil
}
