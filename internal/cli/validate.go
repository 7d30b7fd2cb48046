package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/app"
	"github.com/example/dailyctl/internal/wire"
)

// ValidateCmd returns the validate command
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate data/daily.json against the report format",
		Long: `Check the daily report data for format drift: required fields exist
and are non-empty, headline counts are in range, every item carries
sources. Intentionally strict for the push pipeline.

Exit codes:
  0  OK
  2  validation failed`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := wire.Cfg().DailyPath()
			report, err := app.NewValidateService().ValidateFile(path)
			for _, w := range report.Warnings {
				fmt.Fprintf(os.Stderr, "[validate] WARNING: %s\n", w)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "[validate] %v\n", err)
				return &ExitCodeError{Code: app.ValidateExitCode}
			}
			fmt.Println("[validate] ok")
			return nil
		},
	}
}
