package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/app"
	"github.com/example/dailyctl/internal/wire"
)

// UpdateCmd returns the update command
func UpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Run the update routine and publish the result",
		Long: `Run the configured external update routine, appending its combined
output to the log file, then commit and push index.html if it changed.

The update routine's exit status does not abort the run; a routine that
fails without touching index.html produces no commit. Concurrent update
runs are excluded by a lock file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			result, err := wire.UpdateService().Run(cmd.Context())
			if err != nil {
				recordRun(cmd.Context(), "update", "failed", err.Error(), 1, started)
				return fmt.Errorf("update failed: %w", err)
			}

			recordRun(cmd.Context(), "update", updateOutcome(result), updateDetail(result), 0, started)

			if result.UpdateStepError != "" {
				fmt.Printf("update step failed (see log): %s\n", result.UpdateStepError)
			}
			switch {
			case result.Pushed:
				fmt.Printf("✓ Committed and pushed: %s\n", result.CommitMessage)
			case result.Committed:
				fmt.Printf("✓ Committed (push pending): %s\n", result.CommitMessage)
			case result.Changed:
				fmt.Println("Output changed but was not committed")
			default:
				fmt.Println("No changes to publish")
			}
			return nil
		},
	}
}

func updateOutcome(result *app.UpdateResult) string {
	switch {
	case result.Pushed:
		return "pushed"
	case result.Committed:
		return "committed"
	case result.Changed:
		return "changed"
	default:
		return "no-change"
	}
}

func updateDetail(result *app.UpdateResult) string {
	if result.UpdateStepError != "" {
		return "update step: " + result.UpdateStepError
	}
	return result.CommitMessage
}
