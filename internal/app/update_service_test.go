package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/dailyctl/internal/config"
)

// fakeGit records which git operations the updater performed.
type fakeGit struct {
	changed    bool
	changesErr error
	pushErr    error

	added     []string
	commitMsg string
	pushed    bool
}

func (g *fakeGit) HasChanges(repoPath, path string) (bool, error) {
	return g.changed, g.changesErr
}

func (g *fakeGit) Add(repoPath, path string) error {
	g.added = append(g.added, path)
	return nil
}

func (g *fakeGit) Commit(repoPath, message string) error {
	g.commitMsg = message
	return nil
}

func (g *fakeGit) Push(repoPath, remote, branch string) error {
	if g.pushErr != nil {
		return g.pushErr
	}
	g.pushed = true
	return nil
}

func setupUpdateService(t *testing.T, git *fakeGit) (*UpdateService, *config.Config) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default(root)
	cfg.LogFile = filepath.Join(root, ".dailyctl", "update.log")
	cfg.UpdateCommand = []string{"refresh-page"}

	svc := NewUpdateService(cfg, git)
	svc.runCommand = func(ctx context.Context, argv []string, dir string, out io.Writer) error {
		fmt.Fprintln(out, "refreshed")
		return nil
	}
	return svc, cfg
}

func readLog(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	return string(data)
}

func TestUpdate_NoChanges(t *testing.T) {
	git := &fakeGit{changed: false}
	svc, cfg := setupUpdateService(t, git)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Changed || result.Committed || result.Pushed {
		t.Errorf("expected no-op result, got %+v", result)
	}
	if len(git.added) != 0 {
		t.Errorf("nothing should be staged, got %v", git.added)
	}

	log := readLog(t, cfg)
	if !strings.Contains(log, "no changes to index.html") {
		t.Errorf("log missing no-change entry:\n%s", log)
	}
}

func TestUpdate_CommitsAndPushes(t *testing.T) {
	git := &fakeGit{changed: true}
	svc, cfg := setupUpdateService(t, git)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Changed || !result.Committed || !result.Pushed {
		t.Errorf("expected full publish, got %+v", result)
	}

	wantMsg := fmt.Sprintf("Auto-update headlines - %s", time.Now().UTC().Format("2006-01-02"))
	if git.commitMsg != wantMsg {
		t.Errorf("commit message = %q, want %q", git.commitMsg, wantMsg)
	}
	if len(git.added) != 1 || git.added[0] != cfg.OutputFile {
		t.Errorf("staged %v, want [%s]", git.added, cfg.OutputFile)
	}

	log := readLog(t, cfg)
	if !strings.Contains(log, "starting update") {
		t.Errorf("log missing run header:\n%s", log)
	}
	if !strings.Contains(log, "refreshed") {
		t.Errorf("log missing update routine output:\n%s", log)
	}
	if !strings.Contains(log, "committed and pushed") {
		t.Errorf("log missing publish entry:\n%s", log)
	}
}

func TestUpdate_StepFailureDoesNotAbort(t *testing.T) {
	git := &fakeGit{changed: true}
	svc, cfg := setupUpdateService(t, git)
	svc.runCommand = func(ctx context.Context, argv []string, dir string, out io.Writer) error {
		return fmt.Errorf("exit status 1")
	}

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("update step failure must not abort the run: %v", err)
	}
	if result.UpdateStepError == "" {
		t.Error("expected UpdateStepError to be recorded")
	}
	if !result.Committed || !result.Pushed {
		t.Errorf("changed page should still publish, got %+v", result)
	}

	log := readLog(t, cfg)
	if !strings.Contains(log, "update step failed") {
		t.Errorf("log missing failure entry:\n%s", log)
	}
}

func TestUpdate_PushFailureReturnsError(t *testing.T) {
	git := &fakeGit{changed: true, pushErr: fmt.Errorf("remote rejected")}
	svc, _ := setupUpdateService(t, git)

	result, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected push failure to surface")
	}
	if !result.Committed {
		t.Error("commit should have landed before push failed")
	}
	if result.Pushed {
		t.Error("result must not claim a push that failed")
	}
}

func TestUpdate_NoCommandConfigured(t *testing.T) {
	git := &fakeGit{}
	svc, cfg := setupUpdateService(t, git)
	cfg.UpdateCommand = nil

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error when no update_command is configured")
	}
}

func TestUpdate_ReleasesLock(t *testing.T) {
	git := &fakeGit{changed: false}
	svc, cfg := setupUpdateService(t, git)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(cfg.LockPath()); !os.IsNotExist(err) {
		t.Error("lock file left behind after run")
	}

	// Second run must be able to take the lock again
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
}

func TestUpdate_HeldLockBlocksRun(t *testing.T) {
	git := &fakeGit{changed: false}
	svc, cfg := setupUpdateService(t, git)

	other := NewLockFile(cfg.LockPath())
	if err := other.Acquire(); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	defer other.Release()

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected run to fail while lock is held")
	}
}
