package spaced_repetition

import (
	"fmt"
	"time"

	"github.com/example/vocabplan/pkg/models"
)

// SelectInput is the snapshot the daily selection works on
type SelectInput struct {
	Day      int
	Schedule models.DaySchedule
	// Words per list id, in natural order
	Lists map[int][]models.Word
	// Learning records by word id; a missing record means the word is new
	Records  map[int64]models.LearningRecord
	Quota    models.Quota
	DayStart time.Time
}

// SelectTasks picks the new words and due reviews for one day.
//
// New words come from the memorize list truncated to the quota. Reviews come
// from the review lists in slot order, keeping only words that are due at
// DayStart and are not already in the new group. The review group is capped
// unless the quota leaves it unbounded.
func SelectTasks(in SelectInput) (models.DailyTaskSet, error) {
	if err := in.Quota.Validate(); err != nil {
		return models.DailyTaskSet{}, fmt.Errorf("%w: %v", ErrInvalidQuota, err)
	}
	if in.Day < 1 {
		return models.DailyTaskSet{}, fmt.Errorf("%w: %d", ErrInvalidDay, in.Day)
	}
	if in.Schedule.Day != in.Day {
		return models.DailyTaskSet{}, fmt.Errorf("%w: schedule is for day %d, selecting day %d", ErrInvalidDay, in.Schedule.Day, in.Day)
	}

	set := models.DailyTaskSet{
		Day:        in.Day,
		NewWords:   []models.Word{},
		DueReviews: []models.Word{},
	}

	taken := make(map[int64]bool)
	for _, w := range in.Lists[in.Schedule.Memorize] {
		if len(set.NewWords) >= in.Quota.NewWordsPerDay {
			break
		}
		if taken[w.ID] {
			continue
		}
		taken[w.ID] = true
		set.NewWords = append(set.NewWords, w)
	}

	for _, list := range in.Schedule.ReviewLists() {
		for _, w := range in.Lists[list] {
			if in.Quota.ReviewsPerDay != models.UnboundedReviews && len(set.DueReviews) >= in.Quota.ReviewsPerDay {
				return set, nil
			}
			if taken[w.ID] {
				continue
			}
			rec, ok := in.Records[w.ID]
			if ok && !IsDue(rec, in.DayStart) {
				continue
			}
			taken[w.ID] = true
			set.DueReviews = append(set.DueReviews, w)
		}
	}
	return set, nil
}
