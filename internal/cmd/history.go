package cmd

import (
	"fmt"

	"github.com/jgivc/coursecheck/internal/common"
	"github.com/spf13/cobra"
)

// NewLastCommand creates the last subcommand
func NewLastCommand(opts *options) *cobra.Command {
	var withRows bool

	cmd := &cobra.Command{
		Use:          "last",
		Short:        "Show the most recent validation run stored in Redis",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			return a.Last(cmd.Context(), withRows)
		},
	}

	cmd.Flags().BoolVar(&withRows, "rows", false, "Also print the stored report rows")

	return cmd
}

// NewShowCommand creates the show subcommand
func NewShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:          "show <run-id>",
		Short:        "Show a stored validation run with its report rows",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			return a.Show(cmd.Context(), args[0])
		},
	}
}

// NewHistoryCommand creates the history subcommand
func NewHistoryCommand(opts *options) *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:          "history",
		Short:        "List recent validation runs stored in Redis",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("%w: %d", common.ErrInvalidLimit, limit)
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			return a.History(cmd.Context(), limit)
		},
	}

	cmd.Flags().Int64VarP(&limit, "limit", "n", 10, "Number of runs to show")

	return cmd
}
