package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/vocabplan/internal/review"
	"github.com/example/vocabplan/pkg/models"
)

// Run is one learner's study run: a review state machine whose answers
// are written through the memory model and whose finished sessions are
// stored as results. The panel actions of the machine are available
// directly. A Run is not safe for concurrent use.
type Run struct {
	*review.Machine

	svc       *Service
	learnerID int64
	logger    *slog.Logger
}

// NewRun creates a run for a learner
func (s *Service) NewRun(learnerID int64) *Run {
	logger := s.logger.With("learner_id", learnerID)
	return &Run{
		Machine:   review.NewMachine(s.clock, logger),
		svc:       s,
		learnerID: learnerID,
		logger:    logger,
	}
}

// LearnerID returns the learner the run belongs to
func (r *Run) LearnerID() int64 {
	return r.learnerID
}

// StartToday starts a session over today's tasks in the mode matching the
// selected review mode
func (r *Run) StartToday(ctx context.Context) (models.DailyTaskSet, error) {
	set, err := r.svc.Today(ctx, r.learnerID)
	if err != nil {
		return models.DailyTaskSet{}, err
	}

	mode := review.ModeCard
	if r.svc.modes != nil {
		mode = review.StudyModeFor(r.svc.modes.Current())
	}
	if err := r.StartSession(mode, set.Words()); err != nil {
		return models.DailyTaskSet{}, err
	}
	return set, nil
}

// SubmitAnswer stores the outcome for the active task and advances the
// session. Nothing changes when the answer is rejected.
func (r *Run) SubmitAnswer(ctx context.Context, wordID int64, correct bool) (models.LearningRecord, error) {
	word, ok := r.Current()
	if !ok {
		return models.LearningRecord{}, review.ErrEmptyQueueAdvance
	}
	if word.ID != wordID {
		return models.LearningRecord{}, fmt.Errorf("%w: got %d, active task is %d", ErrUnknownWord, wordID, word.ID)
	}
	if r.Panel() == review.PanelSessionComplete {
		return models.LearningRecord{}, fmt.Errorf("%w: session already ended", review.ErrInvalidTransition)
	}

	rec, err := r.svc.RecordOutcome(ctx, r.learnerID, wordID, correct)
	if err != nil {
		return models.LearningRecord{}, err
	}
	if err := r.Machine.SubmitAnswer(wordID, correct); err != nil {
		return models.LearningRecord{}, err
	}
	return rec, nil
}

// EndSession ends the session and stores its summary. Ending a session
// that has already ended returns its statistics without storing them again.
func (r *Run) EndSession(ctx context.Context) (review.SessionStats, error) {
	if r.Panel() == review.PanelSessionComplete {
		if stats := r.Session().Stats; stats != nil {
			return *stats, nil
		}
	}

	stats := r.Machine.EndSession()
	if r.svc.results == nil {
		return stats, nil
	}

	result := &models.StudyResult{
		LearnerID:    r.learnerID,
		SessionID:    r.Session().ID,
		Mode:         string(r.Mode()),
		TotalWords:   stats.TotalWords,
		CorrectWords: stats.CorrectCount,
		WrongWords:   stats.WrongCount,
		Duration:     stats.TimeSpent,
		FinishedAt:   r.svc.clock.Now(),
	}
	if err := r.svc.results.SaveResult(ctx, result); err != nil {
		return stats, fmt.Errorf("failed to save study result: %w", err)
	}
	r.logger.Info("study result saved", "session_id", result.SessionID, "result_id", result.ID)
	return stats, nil
}
