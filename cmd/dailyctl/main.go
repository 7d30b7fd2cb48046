package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/cli"
	"github.com/example/dailyctl/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "dailyctl",
		Short:   "dailyctl - publish-and-verify pipeline for the daily report",
		Version: version.String(),
		// Errors are reported here in main (exit-code mapping included).
		SilenceErrors: true,
		Long: `dailyctl drives the daily report content pipeline: fetch sources,
render the page, validate the data, publish via git, and verify that
the published page matches its dated archive snapshot.`,
	}

	// Pipeline stages
	rootCmd.AddCommand(cli.FetchCmd())
	rootCmd.AddCommand(cli.RenderCmd())
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.UpdateCmd())
	rootCmd.AddCommand(cli.VerifyCmd())
	rootCmd.AddCommand(cli.MigrateCmd())

	// Operations
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitCodeError
		if errors.As(err, &exitErr) {
			// Diagnostics already printed by the command.
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
