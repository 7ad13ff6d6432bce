package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/vocabplan/internal/bot"
	"github.com/example/vocabplan/internal/scheduler"
)

func newRemindCmd(opts *rootOptions) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send Telegram reminders about today's tasks",
		Long:  "Runs the hourly reminder scheduler until interrupted. With --once sends a reminder to the learner right away.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Telegram.Token == "" {
				return errors.New("telegram token is not configured (set VOCAB_TELEGRAM_TOKEN or TELEGRAM_BOT_TOKEN)")
			}
			notifier, err := bot.NewNotifier(a.cfg.Telegram.Token, a.cfg.Telegram.Debug, a.logger)
			if err != nil {
				return err
			}

			loc, err := time.LoadLocation(a.cfg.Scheduler.Timezone)
			if err != nil {
				return fmt.Errorf("invalid timezone: %w", err)
			}
			s, err := scheduler.New(a.learners, a.service, notifier, scheduler.Config{
				StartHour: a.cfg.Scheduler.StartHour,
				EndHour:   a.cfg.Scheduler.EndHour,
				Location:  loc,
			}, a.logger)
			if err != nil {
				return err
			}

			if once {
				settings, err := a.service.Settings(cmd.Context(), a.learnerID)
				if err != nil {
					return learnerHint(err)
				}
				sent, err := s.RunManualCheck(cmd.Context(), *settings)
				if err != nil {
					return err
				}
				if sent {
					fmt.Fprintln(cmd.OutOrStdout(), "reminder sent")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "nothing to study today, no reminder sent")
				}
				return nil
			}

			// Останавливаемся по сигналу
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := s.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			a.logger.Info("shutting down")
			s.Stop()
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "Send one reminder to the learner and exit")
	return cmd
}
