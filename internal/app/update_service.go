package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/example/dailyctl/internal/config"
)

// updateGit is the subset of GitService the updater needs. Narrowed to
// an interface so tests can run without a real repository.
type updateGit interface {
	HasChanges(repoPath, path string) (bool, error)
	Add(repoPath, path string) error
	Commit(repoPath, message string) error
	Push(repoPath, remote, branch string) error
}

// UpdateResult reports what one update run did. UpdateStepError carries
// the external update routine's failure, if any; the run itself still
// proceeds to the diff check when it is set.
type UpdateResult struct {
	UpdateStepError string
	Changed         bool
	Committed       bool
	Pushed          bool
	CommitMessage   string
}

// UpdateService refreshes the published page via the configured external
// update routine and commits the result when it changed.
type UpdateService struct {
	cfg *config.Config
	git updateGit

	// runCommand executes the external update routine. Overridable in tests.
	runCommand func(ctx context.Context, argv []string, dir string, out io.Writer) error
}

// NewUpdateService creates a new UpdateService.
func NewUpdateService(cfg *config.Config, git updateGit) *UpdateService {
	return &UpdateService{
		cfg:        cfg,
		git:        git,
		runCommand: runExternalCommand,
	}
}

// Run performs one update cycle: lock, run the update routine with its
// combined output appended to the log file, then commit and push the
// published page if it changed.
//
// The update routine's exit status does not abort the run. A failing
// routine that leaves the page unchanged produces no commit; the failure
// is recorded in the result and the log.
func (s *UpdateService) Run(ctx context.Context) (*UpdateResult, error) {
	if len(s.cfg.UpdateCommand) == 0 {
		return nil, fmt.Errorf("no update_command configured")
	}

	lock := NewLockFile(s.cfg.LockPath())
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer lock.Release()

	logf, err := s.openLog()
	if err != nil {
		return nil, err
	}
	defer logf.Close()

	result := &UpdateResult{}
	now := time.Now().UTC()
	fmt.Fprintf(logf, "[update] %s starting update\n", now.Format(time.RFC3339))

	if err := s.runCommand(ctx, s.cfg.UpdateCommand, s.cfg.RepoRoot, logf); err != nil {
		result.UpdateStepError = err.Error()
		fmt.Fprintf(logf, "[update] update step failed: %v\n", err)
	}

	changed, err := s.git.HasChanges(s.cfg.RepoRoot, s.cfg.OutputFile)
	if err != nil {
		return result, fmt.Errorf("failed to check output drift: %w", err)
	}
	if !changed {
		fmt.Fprintf(logf, "[update] no changes to %s\n", s.cfg.OutputFile)
		return result, nil
	}
	result.Changed = true

	if err := s.git.Add(s.cfg.RepoRoot, s.cfg.OutputFile); err != nil {
		return result, err
	}

	result.CommitMessage = fmt.Sprintf("Auto-update headlines - %s", now.Format("2006-01-02"))
	if err := s.git.Commit(s.cfg.RepoRoot, result.CommitMessage); err != nil {
		return result, err
	}
	result.Committed = true

	if err := s.git.Push(s.cfg.RepoRoot, s.cfg.Remote, s.cfg.Branch); err != nil {
		return result, err
	}
	result.Pushed = true

	fmt.Fprintf(logf, "[update] committed and pushed: %s\n", result.CommitMessage)
	return result, nil
}

// openLog opens the append-only log file, creating its directory if needed.
func (s *UpdateService) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(s.cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// runExternalCommand runs argv in dir with combined stdout+stderr going
// to out.
func runExternalCommand(ctx context.Context, argv []string, dir string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}
