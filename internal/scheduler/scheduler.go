package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/vocabplan/pkg/models"
)

// Константы для настроек уведомлений по умолчанию
const (
	DefaultNotificationStartHour = 4  // Время начала уведомлений
	DefaultNotificationEndHour   = 18 // Время окончания уведомлений
)

// Notifier sends a reminder about today's tasks to a learner
type Notifier interface {
	SendReminders(ctx context.Context, learner models.LearnerSettings, newWords, dueReviews int) error
}

// LearnerLister lists learners that want reminders
type LearnerLister interface {
	ListActive(ctx context.Context) ([]models.LearnerSettings, error)
}

// TaskSource computes today's tasks of a learner
type TaskSource interface {
	Today(ctx context.Context, learnerID int64) (models.DailyTaskSet, error)
}

// Config holds the reminder window
type Config struct {
	StartHour int
	EndHour   int
	Location  *time.Location
}

// DefaultConfig returns the default reminder window in UTC
func DefaultConfig() Config {
	return Config{
		StartHour: DefaultNotificationStartHour,
		EndHour:   DefaultNotificationEndHour,
		Location:  time.UTC,
	}
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	learners  LearnerLister
	tasks     TaskSource
	notifier  Notifier
	config    Config
	logger    *slog.Logger
}

// New creates a new scheduler instance
func New(learners LearnerLister, tasks TaskSource, notifier Notifier, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	if cfg.StartHour < 0 || cfg.StartHour > 23 || cfg.EndHour < 0 || cfg.EndHour > 23 {
		return nil, fmt.Errorf("notification hours must be within 0-23, got %d-%d", cfg.StartHour, cfg.EndHour)
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(cfg.Location),
		learners:  learners,
		tasks:     tasks,
		notifier:  notifier,
		config:    cfg,
		logger:    logger.With("component", "scheduler"),
	}, nil
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start(ctx context.Context) error {
	// Schedule hourly check for learners who need reminders
	_, err := s.scheduler.Every(1).Hour().Do(func() {
		if _, err := s.RunCheck(ctx, time.Now().In(s.config.Location)); err != nil {
			s.logger.Error("reminder check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started",
		"start_hour", s.config.StartHour,
		"end_hour", s.config.EndHour)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("reminder scheduler stopped")
}

// InWindow reports whether hour lies in the notification window
func (s *Scheduler) InWindow(hour int) bool {
	return hour >= s.config.StartHour && hour <= s.config.EndHour
}

// RunCheck sends reminders to learners whose notification hour is the
// hour of now and who have something to study. It returns the number of
// reminders sent. Failures for one learner do not stop the others.
func (s *Scheduler) RunCheck(ctx context.Context, now time.Time) (int, error) {
	currentHour := now.Hour()
	if !s.InWindow(currentHour) {
		s.logger.Debug("outside notification hours, skipping reminders",
			"hour", currentHour,
			"start_hour", s.config.StartHour,
			"end_hour", s.config.EndHour)
		return 0, nil
	}

	learners, err := s.learners.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get learners for notification: %w", err)
	}

	sent := 0
	for _, learner := range learners {
		if learner.NotificationHour != currentHour {
			continue
		}
		ok, err := s.remind(ctx, learner)
		if err != nil {
			s.logger.Error("failed to send reminder", "learner_id", learner.LearnerID, "error", err)
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

// RunManualCheck sends a reminder to one learner regardless of the hour
func (s *Scheduler) RunManualCheck(ctx context.Context, learner models.LearnerSettings) (bool, error) {
	return s.remind(ctx, learner)
}

func (s *Scheduler) remind(ctx context.Context, learner models.LearnerSettings) (bool, error) {
	set, err := s.tasks.Today(ctx, learner.LearnerID)
	if err != nil {
		return false, fmt.Errorf("failed to get today's tasks: %w", err)
	}
	if set.Empty() {
		return false, nil
	}
	if err := s.notifier.SendReminders(ctx, learner, len(set.NewWords), len(set.DueReviews)); err != nil {
		return false, err
	}
	return true, nil
}
