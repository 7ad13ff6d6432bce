// Package study composes the memory model, the review calendar and the
// session state machine on top of the word, record and learner stores.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/vocabplan/internal/review"
	sr "github.com/example/vocabplan/internal/spaced_repetition"
	"github.com/example/vocabplan/pkg/models"
)

var (
	// ErrUnknownWord matches review.ErrUnknownWord
	ErrUnknownWord = review.ErrUnknownWord
	// ErrUnknownLearner is returned when a learner has no settings
	ErrUnknownLearner = errors.New("study: unknown learner")
)

// WordStore loads vocabulary
type WordStore interface {
	LoadWords(ctx context.Context, grade, textbook string, unit int) ([]models.Word, error)
	// LoadList returns the words of a list in natural order
	LoadList(ctx context.Context, listID int) ([]models.Word, error)
	// LoadWord returns nil without an error when there is no such word
	LoadWord(ctx context.Context, id int64) (*models.Word, error)
}

// LearningRecordStore keeps the memory state per learner and word
type LearningRecordStore interface {
	// Get returns nil without an error when there is no record
	Get(ctx context.Context, learnerID, wordID int64) (*models.LearningRecord, error)
	Put(ctx context.Context, rec models.LearningRecord) error
}

// LearnerStore provides per-learner plan settings
type LearnerStore interface {
	// GetSettings returns nil without an error for an unknown learner
	GetSettings(ctx context.Context, learnerID int64) (*models.LearnerSettings, error)
}

// ResultStore keeps finished session summaries
type ResultStore interface {
	SaveResult(ctx context.Context, result *models.StudyResult) error
}

// Clock supplies the current time
type Clock = review.Clock

// Options carries the optional collaborators of a Service
type Options struct {
	Curve   *sr.Curve
	Planner *sr.Planner
	Results ResultStore
	Modes   *review.ModeManager
	Clock   Clock
	Logger  *slog.Logger
}

// Service is the entry point used by the CLI, the scheduler and tests
type Service struct {
	words    WordStore
	records  LearningRecordStore
	learners LearnerStore
	results  ResultStore
	modes    *review.ModeManager
	curve    *sr.Curve
	planner  *sr.Planner
	clock    Clock
	logger   *slog.Logger
}

// NewService creates a study service
func NewService(words WordStore, records LearningRecordStore, learners LearnerStore, opts Options) (*Service, error) {
	if words == nil {
		return nil, errors.New("word store cannot be nil")
	}
	if records == nil {
		return nil, errors.New("learning record store cannot be nil")
	}
	if learners == nil {
		return nil, errors.New("learner store cannot be nil")
	}

	s := &Service{
		words:    words,
		records:  records,
		learners: learners,
		results:  opts.Results,
		modes:    opts.Modes,
		curve:    opts.Curve,
		planner:  opts.Planner,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
	if s.curve == nil {
		s.curve = sr.NewDefaultCurve()
	}
	if s.planner == nil {
		s.planner = sr.NewPlanner()
	}
	if s.clock == nil {
		s.clock = review.SystemClock{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "study_service")
	return s, nil
}

// Curve returns the memory model used by the service
func (s *Service) Curve() *sr.Curve {
	return s.curve
}

// GenerateSchedule returns the review calendar for a range of days
func (s *Service) GenerateSchedule(startDay, horizonDays int) ([]models.DaySchedule, error) {
	return s.planner.Plan(startDay, horizonDays)
}

// Settings returns the settings of a learner or ErrUnknownLearner
func (s *Service) Settings(ctx context.Context, learnerID int64) (*models.LearnerSettings, error) {
	settings, err := s.learners.GetSettings(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learner settings: %w", err)
	}
	if settings == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLearner, learnerID)
	}
	return settings, nil
}

// SelectDailyTasks returns the new words and due reviews of a learner for
// a logical day of the plan
func (s *Service) SelectDailyTasks(ctx context.Context, day int, learnerID int64, quota models.Quota) (models.DailyTaskSet, error) {
	if err := quota.Validate(); err != nil {
		return models.DailyTaskSet{}, fmt.Errorf("%w: %v", sr.ErrInvalidQuota, err)
	}
	row, err := s.planner.Day(day)
	if err != nil {
		return models.DailyTaskSet{}, err
	}
	settings, err := s.Settings(ctx, learnerID)
	if err != nil {
		return models.DailyTaskSet{}, err
	}

	listIDs := append([]int{row.Memorize}, row.ReviewLists()...)
	lists := make(map[int][]models.Word, len(listIDs))
	for _, id := range listIDs {
		words, err := s.words.LoadList(ctx, id)
		if err != nil {
			return models.DailyTaskSet{}, fmt.Errorf("failed to load list %d: %w", id, err)
		}
		lists[id] = words
	}

	records := make(map[int64]models.LearningRecord)
	for _, id := range row.ReviewLists() {
		for _, w := range lists[id] {
			rec, err := s.records.Get(ctx, learnerID, w.ID)
			if err != nil {
				return models.DailyTaskSet{}, fmt.Errorf("failed to get learning record: %w", err)
			}
			if rec != nil {
				records[w.ID] = *rec
			}
		}
	}

	set, err := sr.SelectTasks(sr.SelectInput{
		Day:      day,
		Schedule: row,
		Lists:    lists,
		Records:  records,
		Quota:    quota,
		DayStart: sr.DayStart(settings.PlanStart, day),
	})
	if err != nil {
		return models.DailyTaskSet{}, err
	}
	if s.modes != nil {
		set.Mode = string(s.modes.Current())
	}

	s.logger.Debug("selected daily tasks",
		"learner_id", learnerID,
		"day", day,
		"new", len(set.NewWords),
		"due", len(set.DueReviews))
	return set, nil
}

// Today selects the tasks of the current plan day using the learner's quota
func (s *Service) Today(ctx context.Context, learnerID int64) (models.DailyTaskSet, error) {
	settings, err := s.Settings(ctx, learnerID)
	if err != nil {
		return models.DailyTaskSet{}, err
	}
	day := sr.DayIndex(settings.PlanStart, s.clock.Now())
	return s.SelectDailyTasks(ctx, day, learnerID, settings.Quota)
}

// RecordOutcome applies one answer to the learner's record of a word and
// stores the result. A word without a record is treated as a first exposure.
// Unknown learners and words are rejected before anything is written.
func (s *Service) RecordOutcome(ctx context.Context, learnerID, wordID int64, correct bool) (models.LearningRecord, error) {
	if _, err := s.Settings(ctx, learnerID); err != nil {
		return models.LearningRecord{}, err
	}
	word, err := s.words.LoadWord(ctx, wordID)
	if err != nil {
		return models.LearningRecord{}, fmt.Errorf("failed to get word: %w", err)
	}
	if word == nil {
		return models.LearningRecord{}, fmt.Errorf("%w: %d", ErrUnknownWord, wordID)
	}

	rec, err := s.records.Get(ctx, learnerID, wordID)
	if err != nil {
		return models.LearningRecord{}, fmt.Errorf("failed to get learning record: %w", err)
	}

	current := s.curve.NewRecord(learnerID, wordID)
	if rec != nil {
		current = *rec
	}

	next := s.curve.Update(current, correct, s.clock.Now())
	if err := s.records.Put(ctx, next); err != nil {
		return models.LearningRecord{}, fmt.Errorf("failed to save learning record: %w", err)
	}

	s.logger.Debug("recorded outcome",
		"learner_id", learnerID,
		"word_id", wordID,
		"correct", correct,
		"strength", next.Strength,
		"next_due_at", next.NextDueAt)
	return next, nil
}
