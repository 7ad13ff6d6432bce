package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	sr "github.com/example/vocabplan/internal/spaced_repetition"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	var start, days int

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the review calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadApp(cmd, opts); err != nil {
				return err
			}
			plan, err := sr.NewPlanner().Plan(start, days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSchedule(plan))
			return nil
		},
	}
	cmd.Flags().IntVar(&start, "start", 1, "First day to print")
	cmd.Flags().IntVar(&days, "days", sr.DefaultHorizonDays, "Number of days to print")
	return cmd
}
