// Package wire provides dependency injection for the dailyctl
// application. It creates singleton services with lazy initialization,
// scoped to the repository in the current working directory.
package wire

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/example/dailyctl/internal/adapters/sqlite"
	"github.com/example/dailyctl/internal/app"
	"github.com/example/dailyctl/internal/config"
	"github.com/example/dailyctl/internal/db"
)

var (
	cfg      *config.Config
	database *sql.DB
	history  *app.HistoryService
)

// Cfg returns the repository config, loading it (or defaults) from the
// current working directory on first use.
func Cfg() *config.Config {
	if cfg == nil {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		cfg = config.LoadOrDefault(cwd)
	}
	return cfg
}

// Git returns a GitService. Stateless, so a fresh one each call.
func Git() *app.GitService {
	return app.NewGitService()
}

// History returns the singleton HistoryService, opening the run
// database on first use.
func History() (*app.HistoryService, error) {
	if history != nil {
		return history, nil
	}

	d, err := db.Open(Cfg().DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	database = d
	history = app.NewHistoryService(sqlite.NewRunRepository(database))
	return history, nil
}

// Validator returns the validation step for verify runs: the external
// validator command when configured, the built-in schema validator
// otherwise.
func Validator() app.Validator {
	c := Cfg()
	if len(c.ValidatorCommand) > 0 {
		return app.NewExecValidator(c.ValidatorCommand, c.RepoRoot)
	}
	return app.NewSchemaValidator(app.NewValidateService(), c.DailyPath(), os.Stderr)
}

// UpdateService returns an updater for the current repository.
func UpdateService() *app.UpdateService {
	return app.NewUpdateService(Cfg(), Git())
}

// VerifyService returns a verifier for the current repository.
func VerifyService() *app.VerifyService {
	return app.NewVerifyService(Cfg(), Validator())
}

// RenderService returns a renderer for the current repository.
func RenderService() *app.RenderService {
	return app.NewRenderService(Cfg())
}

// FetchService returns a fetcher writing progress to stdout.
func FetchService() *app.FetchService {
	return app.NewFetchService(Cfg(), os.Stdout)
}

// MigrateService returns an archive migrator writing progress to stdout.
func MigrateService() *app.MigrateService {
	return app.NewMigrateService(Cfg(), RenderService(), os.Stdout)
}
