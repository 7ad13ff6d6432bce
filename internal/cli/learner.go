package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	sr "github.com/example/vocabplan/internal/spaced_repetition"
	"github.com/example/vocabplan/pkg/models"
)

const dateLayout = "2006-01-02"

func newLearnerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learner",
		Short: "Manage learner settings",
	}
	cmd.AddCommand(newLearnerSetCmd(opts), newLearnerShowCmd(opts))
	return cmd
}

func newLearnerSetCmd(opts *rootOptions) *cobra.Command {
	var (
		words, reviews, hour int
		chatID               int64
		start                string
		inactive             bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the learner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			settings, err := a.learners.GetSettings(ctx, a.learnerID)
			if err != nil {
				return err
			}
			if settings == nil {
				// Новый ученик: значения по умолчанию из конфигурации
				settings = &models.LearnerSettings{
					LearnerID:        a.learnerID,
					PlanStart:        sr.StartOfDay(time.Now()),
					Quota:            a.cfg.Study.Quota(),
					NotificationHour: a.cfg.Study.NotificationHour,
					Active:           true,
				}
			}

			flags := cmd.Flags()
			if flags.Changed("words") {
				settings.Quota.NewWordsPerDay = words
			}
			if flags.Changed("reviews") {
				settings.Quota.ReviewsPerDay = reviews
			}
			if flags.Changed("hour") {
				settings.NotificationHour = hour
			}
			if flags.Changed("chat") {
				settings.ChatID = chatID
			}
			if flags.Changed("start") {
				t, err := time.ParseInLocation(dateLayout, start, time.Local)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				settings.PlanStart = t
			}
			if flags.Changed("inactive") {
				settings.Active = !inactive
			}

			if err := a.learners.Save(ctx, *settings); err != nil {
				return err
			}
			a.logger.Info("learner saved", "learner_id", settings.LearnerID)
			fmt.Fprint(cmd.OutOrStdout(), renderSettings(*settings))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&words, "words", 0, fmt.Sprintf("New words per day, one of %v", models.QuotaPresets))
	f.IntVar(&reviews, "reviews", 0, "Reviews per day, 0 for no cap")
	f.IntVar(&hour, "hour", 0, "Reminder hour (0-23)")
	f.Int64Var(&chatID, "chat", 0, "Telegram chat id for reminders")
	f.StringVar(&start, "start", "", "Plan start date, YYYY-MM-DD")
	f.BoolVar(&inactive, "inactive", false, "Disable reminders")
	return cmd
}

func newLearnerShowCmd(opts *rootOptions) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show learner settings and study history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			settings, err := a.service.Settings(ctx, a.learnerID)
			if err != nil {
				return learnerHint(err)
			}
			summary, err := a.results.Summary(ctx, a.learnerID)
			if err != nil {
				return err
			}
			results, err := a.results.ListByLearner(ctx, a.learnerID, last)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderSettings(*settings))
			fmt.Fprintf(out, "today is day %d\n", sr.DayIndex(settings.PlanStart, time.Now()))
			fmt.Fprintf(out, "sessions: %d  words: %d  accuracy: %.0f%%\n",
				summary.Sessions, summary.TotalWords, summary.Accuracy*100)
			for _, r := range results {
				fmt.Fprintf(out, "  %s  %-8s %d/%d\n",
					r.FinishedAt.Local().Format("2006-01-02 15:04"), r.Mode, r.CorrectWords, r.TotalWords)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&last, "last", 5, "Number of recent sessions to list")
	return cmd
}

func renderSettings(s models.LearnerSettings) string {
	reviews := "no cap"
	if s.Quota.ReviewsPerDay != models.UnboundedReviews {
		reviews = fmt.Sprint(s.Quota.ReviewsPerDay)
	}
	return fmt.Sprintf("%s\n  plan start: %s\n  new words per day: %d\n  reviews per day: %s\n  reminder hour: %d\n  chat: %d\n  active: %t\n",
		headerStyle.Render(fmt.Sprintf("Learner %d", s.LearnerID)),
		s.PlanStart.Local().Format(dateLayout),
		s.Quota.NewWordsPerDay,
		reviews,
		s.NotificationHour,
		s.ChatID,
		s.Active,
	)
}
