package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/wire"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite legacy archive pages into the current template",
		Long: `Rewrite historical archive HTML files into the current template style:
extract the news content, normalize legacy class names, rebuild the
page. The newest archive is skipped (already current). After a write
run the homepage is re-rendered so its archive nav matches.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				fmt.Println("Dry run - no files will be modified")
			}

			started := time.Now()
			stats, err := wire.MigrateService().Run(dryRun)
			if err != nil {
				recordRun(cmd.Context(), "migrate", "failed", err.Error(), 1, started)
				return fmt.Errorf("migrate failed: %w", err)
			}

			detail := fmt.Sprintf("migrated=%d skipped=%d failed=%d", stats.Migrated, stats.Skipped, stats.Failed)
			if !dryRun {
				recordRun(cmd.Context(), "migrate", "ok", detail, 0, started)
			}
			fmt.Println()
			fmt.Printf("Migrated: %d\n", stats.Migrated)
			fmt.Printf("Skipped:  %d\n", stats.Skipped)
			fmt.Printf("Failed:   %d\n", stats.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")

	return cmd
}
