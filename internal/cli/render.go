package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/wire"
)

// RenderCmd returns the render command
func RenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render the daily report page from its JSON data",
		Long: `Render archive/<date>.html from data/daily.json (and the optional
data/techneme.json) through template.html, then make index.html a
byte-identical copy. Deterministic: no fetches, no tool calls.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			archivePath, err := wire.RenderService().Run()
			if err != nil {
				recordRun(cmd.Context(), "render", "failed", err.Error(), 1, started)
				return fmt.Errorf("render failed: %w", err)
			}

			recordRun(cmd.Context(), "render", "ok", archivePath, 0, started)
			fmt.Println(archivePath)
			return nil
		},
	}
}
