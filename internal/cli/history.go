package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/ports/secondary"
	"github.com/example/dailyctl/internal/wire"
)

// HistoryCmd returns the history command with its subcommands
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage the pipeline run history",
		Long:  "View, filter, and prune recorded pipeline runs (audit trail)",
	}

	cmd.AddCommand(historyTailCmd())
	cmd.AddCommand(historyPruneCmd())

	return cmd
}

func historyTailCmd() *cobra.Command {
	var limit int
	var command string
	var outcome string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show recent runs",
		Long:  "Show recent pipeline runs (default 50)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = 50
			}

			history, err := wire.History()
			if err != nil {
				return err
			}

			runs, err := history.ListRuns(cmd.Context(), secondary.RunFilters{
				Command: command,
				Outcome: outcome,
				Limit:   limit,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch runs: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s  %-8s exit=%d %-16s %s\n",
					run.StartedAt, run.Command, run.ExitCode, run.Outcome, run.Detail)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum runs to show")
	cmd.Flags().StringVar(&command, "command", "", "Filter by command (update, verify, ...)")
	cmd.Flags().StringVar(&outcome, "outcome", "", "Filter by outcome (ok, mismatch, ...)")

	return cmd
}

func historyPruneCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old run records",
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := wire.History()
			if err != nil {
				return err
			}

			n, err := history.PruneRuns(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("failed to prune runs: %w", err)
			}
			fmt.Printf("Deleted %d runs older than %d days\n", n, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Delete runs older than this many days")

	return cmd
}
