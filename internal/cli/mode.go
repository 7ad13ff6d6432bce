package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocabplan/internal/review"
)

func newModeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Show or change the review mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, err := loadModes(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), modes.Current())
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:       "set <mode>",
		Short:     "Select the review mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(review.MultipleChoice), string(review.Spelling), string(review.SelfAssessment)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := review.ParseReviewMode(args[0])
			if err != nil {
				return err
			}
			modes, err := loadModes(cmd, opts)
			if err != nil {
				return err
			}
			if err := modes.Set(cmd.Context(), mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "review mode set to %s\n", mode)
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default review mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, err := loadModes(cmd, opts)
			if err != nil {
				return err
			}
			if err := modes.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "review mode reset to %s\n", modes.Current())
			return nil
		},
	}

	cmd.AddCommand(setCmd, resetCmd)
	return cmd
}

func loadModes(cmd *cobra.Command, opts *rootOptions) (*review.ModeManager, error) {
	a, err := loadApp(cmd, opts)
	if err != nil {
		return nil, err
	}
	return a.modeManager(cmd.Context())
}
