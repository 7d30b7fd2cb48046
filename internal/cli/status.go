package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/ports/secondary"
	"github.com/example/dailyctl/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show repository and pipeline state",
		Long: `Display a snapshot of the report repository:
- archive count and newest snapshot date
- whether index.html has drifted since the last commit
- recent pipeline runs from the history database`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Cfg()

			bold := color.New(color.Bold)
			green := color.New(color.FgGreen)
			yellow := color.New(color.FgYellow)
			red := color.New(color.FgRed)

			bold.Println("Daily Report Status")
			fmt.Println()
			fmt.Printf("  Repo:    %s\n", cfg.RepoRoot)
			fmt.Printf("  Output:  %s\n", cfg.OutputFile)

			names := archiveDates(cfg.ArchiveDirPath())
			if len(names) == 0 {
				yellow.Println("  Archive: empty")
			} else {
				fmt.Printf("  Archive: %d snapshots, newest %s\n", len(names), names[len(names)-1])
			}

			if _, err := os.Stat(cfg.OutputPath()); err != nil {
				red.Printf("  Output file missing: %s\n", cfg.OutputPath())
			} else if wire.Git().IsWorkTree(cfg.RepoRoot) {
				changed, err := wire.Git().HasChanges(cfg.RepoRoot, cfg.OutputFile)
				switch {
				case err != nil:
					yellow.Printf("  Drift:   unknown (%v)\n", err)
				case changed:
					yellow.Println("  Drift:   output changed since last commit")
				default:
					green.Println("  Drift:   clean")
				}
			}

			history, err := wire.History()
			if err != nil {
				yellow.Printf("\n  History unavailable: %v\n", err)
				return nil
			}

			runs, err := history.ListRuns(cmd.Context(), secondary.RunFilters{Limit: 5})
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Println("\n  No recorded runs yet.")
				return nil
			}

			fmt.Println("\nRecent runs:")
			for _, run := range runs {
				line := fmt.Sprintf("  %s  %-8s %-16s %s", run.StartedAt, run.Command, run.Outcome, run.Detail)
				if run.ExitCode == 0 {
					fmt.Println(line)
				} else {
					red.Println(line)
				}
			}
			return nil
		},
	}
}

// archiveDates lists dated archive basenames in ascending order.
func archiveDates(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".html"))
	}
	sort.Strings(names)
	return names
}
