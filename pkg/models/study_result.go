package models

import "time"

// StudyResult summarizes one finished review session
type StudyResult struct {
	ID           int64         `json:"id" db:"id"`
	LearnerID    int64         `json:"learner_id" db:"learner_id"`
	SessionID    string        `json:"session_id" db:"session_id"`
	Mode         string        `json:"mode" db:"mode"` // e.g., "card", "list", "spelling"
	TotalWords   int           `json:"total_words" db:"total_words"`
	CorrectWords int           `json:"correct_words" db:"correct_words"`
	WrongWords   int           `json:"wrong_words" db:"wrong_words"`
	Duration     time.Duration `json:"duration" db:"-"`
	FinishedAt   time.Time     `json:"finished_at" db:"-"`
}
