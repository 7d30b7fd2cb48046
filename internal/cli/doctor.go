package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/config"
	"github.com/example/dailyctl/internal/db"
	"github.com/example/dailyctl/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the repository and pipeline environment",
		Long: `Health check for the report repository:

- git binary on PATH and repo root inside a work tree
- archive directory and page template present
- config file syntax (when present)
- run history database reachable

Examples:
  dailyctl doctor          # Run full health check
  dailyctl doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Cfg()

			results := []CheckResult{
				checkGitBinary(),
				checkWorkTree(cfg),
				checkArchiveDir(cfg),
				checkTemplate(cfg),
				checkConfigFile(cfg),
				checkHistoryDB(cfg),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func checkGitBinary() CheckResult {
	path, err := exec.LookPath("git")
	if err != nil {
		return CheckResult{Name: "Git Binary", Status: "✗", Details: "  'git' not found in PATH"}
	}
	return CheckResult{Name: "Git Binary", Status: "✓", Details: "  " + path}
}

func checkWorkTree(cfg *config.Config) CheckResult {
	if !wire.Git().IsWorkTree(cfg.RepoRoot) {
		return CheckResult{
			Name:    "Work Tree",
			Status:  "✗",
			Details: fmt.Sprintf("  %s is not inside a git work tree", cfg.RepoRoot),
		}
	}
	return CheckResult{Name: "Work Tree", Status: "✓"}
}

func checkArchiveDir(cfg *config.Config) CheckResult {
	info, err := os.Stat(cfg.ArchiveDirPath())
	if err != nil || !info.IsDir() {
		return CheckResult{
			Name:    "Archive Dir",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s missing (created on first render)", cfg.ArchiveDirPath()),
		}
	}
	return CheckResult{Name: "Archive Dir", Status: "✓"}
}

func checkTemplate(cfg *config.Config) CheckResult {
	data, err := os.ReadFile(cfg.TemplatePath())
	if err != nil {
		return CheckResult{
			Name:    "Template",
			Status:  "✗",
			Details: fmt.Sprintf("  cannot read %s", cfg.TemplatePath()),
		}
	}

	var missing []string
	for _, placeholder := range []string{"{{DATE}}", "{{CONTENT}}"} {
		if !strings.Contains(string(data), placeholder) {
			missing = append(missing, placeholder)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:    "Template",
			Status:  "⚠",
			Details: "  missing placeholders: " + strings.Join(missing, ", "),
		}
	}
	return CheckResult{Name: "Template", Status: "✓"}
}

func checkConfigFile(cfg *config.Config) CheckResult {
	if _, err := os.Stat(cfg.RepoRoot + "/.dailyctl/config.json"); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  no .dailyctl/config.json (running on defaults; 'dailyctl init' to create)",
		}
	}
	if _, err := config.LoadConfig(cfg.RepoRoot); err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

func checkHistoryDB(cfg *config.Config) CheckResult {
	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return CheckResult{Name: "History DB", Status: "✗", Details: "  " + err.Error()}
	}
	defer database.Close()

	if err := database.Ping(); err != nil {
		return CheckResult{Name: "History DB", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "History DB", Status: "✓"}
}
