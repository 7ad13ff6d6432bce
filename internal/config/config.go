// Package config loads application settings from defaults, an optional
// config file, a .env file and environment variables.
package config

import (
	"github.com/example/vocabplan/internal/preferences"
	"github.com/example/vocabplan/internal/scheduler"
	"github.com/example/vocabplan/pkg/models"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Study     StudyConfig     `mapstructure:"study" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=sqlite3 sqlite postgres"`
	DSN    string `mapstructure:"dsn" validate:"required"`
}

// TelegramConfig holds the reminder bot settings. An empty token disables reminders.
type TelegramConfig struct {
	Token string `mapstructure:"token"`
	Debug bool   `mapstructure:"debug"`
}

// SchedulerConfig is the window in which reminders may be sent.
type SchedulerConfig struct {
	StartHour int    `mapstructure:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int    `mapstructure:"end_hour" validate:"gte=0,lte=23,gtefield=StartHour"`
	Timezone  string `mapstructure:"timezone" validate:"required,timezone"`
}

// StudyConfig holds defaults for new learners and the local learner.
type StudyConfig struct {
	LearnerID        int64  `mapstructure:"learner_id" validate:"gt=0"`
	WordsPerDay      int    `mapstructure:"words_per_day" validate:"oneof=5 10 15 20 30"`
	ReviewsPerDay    int    `mapstructure:"reviews_per_day" validate:"oneof=0 5 10 15 20 30"`
	NotificationHour int    `mapstructure:"notification_hour" validate:"gte=0,lte=23"`
	PreferencesPath  string `mapstructure:"preferences_path" validate:"required"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// Quota returns the default quota for new learners.
func (c StudyConfig) Quota() models.Quota {
	return models.Quota{NewWordsPerDay: c.WordsPerDay, ReviewsPerDay: c.ReviewsPerDay}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	quota := models.DefaultQuota()
	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    preferences.DefaultDBPath(),
		},
		Scheduler: SchedulerConfig{
			StartHour: scheduler.DefaultNotificationStartHour,
			EndHour:   scheduler.DefaultNotificationEndHour,
			Timezone:  "UTC",
		},
		Study: StudyConfig{
			LearnerID:        1,
			WordsPerDay:      quota.NewWordsPerDay,
			ReviewsPerDay:    quota.ReviewsPerDay,
			NotificationHour: 9,
			PreferencesPath:  preferences.DefaultPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
