// Package cli implements the vocabplan commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/example/vocabplan/internal/config"
	"github.com/example/vocabplan/internal/database"
	"github.com/example/vocabplan/internal/logger"
	"github.com/example/vocabplan/internal/preferences"
	"github.com/example/vocabplan/internal/review"
	"github.com/example/vocabplan/internal/study"
)

type rootOptions struct {
	configFile string
	learnerID  int64
}

// NewRootCmd builds the top-level command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "vocabplan",
		Short:         "Spaced repetition vocabulary planner",
		Long:          "Plans daily vocabulary lists on an Ebbinghaus schedule, runs review sessions and sends Telegram reminders.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Config file (TOML, YAML or JSON)")
	rootCmd.PersistentFlags().Int64VarP(&opts.learnerID, "learner", "l", 0, "Learner id (default: study.learner_id from config)")

	rootCmd.AddCommand(
		newScheduleCmd(opts),
		newTodayCmd(opts),
		newStudyCmd(opts),
		newModeCmd(opts),
		newImportCmd(opts),
		newLearnerCmd(opts),
		newRemindCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// app holds everything a command needs once config is loaded
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	learnerID int64

	db       *sqlx.DB
	words    *database.WordRepository
	records  *database.LearningRecordRepository
	learners *database.LearnerRepository
	results  *database.StudyResultRepository
	modes    *review.ModeManager
	service  *study.Service
}

// loadApp loads config and the logger without touching storage
func loadApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	learnerID := cfg.Study.LearnerID
	if opts.learnerID != 0 {
		learnerID = opts.learnerID
	}
	return &app{cfg: cfg, logger: log, learnerID: learnerID}, nil
}

// openApp loads config and opens the database and the study service
func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	a, err := loadApp(cmd, opts)
	if err != nil {
		return nil, err
	}

	a.db, err = database.Connect(database.Config{Driver: a.cfg.Database.Driver, DSN: a.cfg.Database.DSN})
	if err != nil {
		return nil, err
	}
	a.logger.Debug("database connected", "driver", a.cfg.Database.Driver)

	a.words = database.NewWordRepository(a.db)
	a.records = database.NewLearningRecordRepository(a.db)
	a.learners = database.NewLearnerRepository(a.db)
	a.results = database.NewStudyResultRepository(a.db)

	a.modes, err = a.modeManager(cmd.Context())
	if err != nil {
		a.Close()
		return nil, err
	}

	a.service, err = study.NewService(a.words, a.records, a.learners, study.Options{
		Results: a.results,
		Modes:   a.modes,
		Logger:  a.logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) modeManager(ctx context.Context) (*review.ModeManager, error) {
	store, err := preferences.NewFileStore(a.cfg.Study.PreferencesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	return review.NewModeManager(ctx, store, a.logger), nil
}

// Close releases the database connection
func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		}
	}
}
