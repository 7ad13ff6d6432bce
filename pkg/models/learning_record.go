package models

import "time"

// LearningRecord tracks a learner's memory state for a single word
type LearningRecord struct {
	LearnerID       int64      `json:"learner_id"`
	WordID          int64      `json:"word_id"`
	Strength        float64    `json:"strength"`         // Forgetting-curve decay constant in days
	RepetitionCount int        `json:"repetition_count"` // Consecutive correct reviews
	Lapses          int        `json:"lapses"`           // Number of incorrect answers
	Attempts        int        `json:"attempts"`         // Number of answers of any kind
	LastReviewedAt  time.Time  `json:"last_reviewed_at"`
	NextDueAt       *time.Time `json:"next_due_at,omitempty"` // nil until the first review
}

// IsNew reports whether the word has never been reviewed
func (r LearningRecord) IsNew() bool {
	return r.NextDueAt == nil
}

// Accuracy returns the share of correct answers, 0 when there were none
func (r LearningRecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Attempts-r.Lapses) / float64(r.Attempts)
}

// Clone returns a deep copy of the record
func (r LearningRecord) Clone() LearningRecord {
	c := r
	if r.NextDueAt != nil {
		due := *r.NextDueAt
		c.NextDueAt = &due
	}
	return c
}
