package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/config"
	"github.com/example/dailyctl/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize dailyctl in the current repository",
		Long: `Write a default .dailyctl/config.json into the current directory and
create the run history database. Existing config is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			if _, err := config.LoadConfig(cwd); err == nil {
				fmt.Println(".dailyctl/config.json already exists, leaving it alone")
			} else {
				cfg := config.Default(cwd)
				// Persist only the choices, not the derived paths.
				cfg.RepoRoot = ""
				if err := config.SaveConfig(cwd, cfg); err != nil {
					return err
				}
				fmt.Println("✓ Wrote .dailyctl/config.json")
			}

			cfg := config.LoadOrDefault(cwd)
			database, err := db.Open(cfg.DBPath())
			if err != nil {
				return fmt.Errorf("failed to initialize run history: %w", err)
			}
			database.Close()
			fmt.Printf("✓ Run history database at %s\n", cfg.DBPath())

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  set update_command in .dailyctl/config.json")
			fmt.Println("  dailyctl doctor")

			return nil
		},
	}
}
