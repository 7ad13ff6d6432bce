package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocabplan/internal/study"
	"github.com/example/vocabplan/pkg/models"
)

func newTodayCmd(opts *rootOptions) *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the new words and reviews due today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			var set models.DailyTaskSet
			if day > 0 {
				settings, err := a.service.Settings(cmd.Context(), a.learnerID)
				if err != nil {
					return learnerHint(err)
				}
				set, err = a.service.SelectDailyTasks(cmd.Context(), day, a.learnerID, settings.Quota)
				if err != nil {
					return err
				}
			} else {
				set, err = a.service.Today(cmd.Context(), a.learnerID)
				if err != nil {
					return learnerHint(err)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), renderTasks(set))
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "Plan day to show instead of today")
	return cmd
}

// learnerHint points at the learner command when the learner is not set up
func learnerHint(err error) error {
	if errors.Is(err, study.ErrUnknownLearner) {
		return fmt.Errorf("%w (run \"vocabplan learner set\" first)", err)
	}
	return err
}
