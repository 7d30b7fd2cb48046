package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/wire"
)

// FetchCmd returns the fetch command
func FetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch content from the configured sources",
		Long: `Fetch every enabled source in sources.json (RSS feeds, Hacker News,
Reddit, GitHub trending) and write the aggregate to
data/fetched_sources.json. A failing source is skipped, not fatal.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			results, err := wire.FetchService().Run(cmd.Context())
			if err != nil {
				recordRun(cmd.Context(), "fetch", "failed", err.Error(), 1, started)
				return fmt.Errorf("fetch failed: %w", err)
			}

			total := 0
			for _, src := range results.Sources {
				total += src.Count
			}
			recordRun(cmd.Context(), "fetch", "ok", fmt.Sprintf("%d items from %d sources", total, len(results.Sources)), 0, started)
			fmt.Printf("Total items: %d\n", total)
			return nil
		},
	}
}
