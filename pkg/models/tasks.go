package models

import (
	"fmt"
	"slices"
)

// QuotaPresets are the allowed numbers of new words per day
var QuotaPresets = []int{5, 10, 15, 20, 30}

// UnboundedReviews disables the daily review cap
const UnboundedReviews = 0

// Quota caps how many words a learner is given per day
type Quota struct {
	NewWordsPerDay int `json:"new_words_per_day" db:"words_per_day"`
	ReviewsPerDay  int `json:"reviews_per_day" db:"reviews_per_day"` // 0 means unbounded
}

// DefaultQuota returns the recommended quota: ten new words, no review cap
func DefaultQuota() Quota {
	return Quota{NewWordsPerDay: 10, ReviewsPerDay: UnboundedReviews}
}

// Validate checks the quota against the presets
func (q Quota) Validate() error {
	if !slices.Contains(QuotaPresets, q.NewWordsPerDay) {
		return fmt.Errorf("new words per day must be one of %v, got %d", QuotaPresets, q.NewWordsPerDay)
	}
	if q.ReviewsPerDay != UnboundedReviews && !slices.Contains(QuotaPresets, q.ReviewsPerDay) {
		return fmt.Errorf("reviews per day must be unbounded or one of %v, got %d", QuotaPresets, q.ReviewsPerDay)
	}
	return nil
}

// DailyTaskSet is the concrete work for one learner on one day
type DailyTaskSet struct {
	Day        int    `json:"day"`
	NewWords   []Word `json:"new_words"`
	DueReviews []Word `json:"due_reviews"`
	Mode       string `json:"mode,omitempty"` // Review mode the tasks should be presented in
}

// Total returns the number of words in the set
func (s DailyTaskSet) Total() int {
	return len(s.NewWords) + len(s.DueReviews)
}

// Empty reports whether there is nothing to study
func (s DailyTaskSet) Empty() bool {
	return s.Total() == 0
}

// Words returns new words followed by due reviews
func (s DailyTaskSet) Words() []Word {
	words := make([]Word, 0, s.Total())
	words = append(words, s.NewWords...)
	return append(words, s.DueReviews...)
}
