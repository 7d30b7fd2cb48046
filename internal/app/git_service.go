package app

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// GitService provides git operations for the report repository.
type GitService struct{}

// NewGitService creates a new GitService.
func NewGitService() *GitService {
	return &GitService{}
}

// IsWorkTree reports whether the path is inside a git working tree.
func (s *GitService) IsWorkTree(repoPath string) bool {
	output, err := s.runGitCommandOutput(repoPath, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(output) == "true"
}

// GetCurrentBranch returns the current branch name.
func (s *GitService) GetCurrentBranch(repoPath string) (string, error) {
	output, err := s.runGitCommandOutput(repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// HasChanges checks whether a tracked path differs from its last
// committed state (staged, unstaged, or untracked).
func (s *GitService) HasChanges(repoPath, path string) (bool, error) {
	output, err := s.runGitCommandOutput(repoPath, "status", "--porcelain", "--", path)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}

// Add stages a path.
func (s *GitService) Add(repoPath, path string) error {
	if err := s.runGitCommand(repoPath, "add", "--", path); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}

// Commit creates a commit with the given message.
func (s *GitService) Commit(repoPath, message string) error {
	if err := s.runGitCommand(repoPath, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Push pushes to the given remote. An empty branch pushes the current
// branch's configured upstream.
func (s *GitService) Push(repoPath, remote, branch string) error {
	args := []string{"push", remote}
	if branch != "" {
		args = append(args, branch)
	}
	if err := s.runGitCommand(repoPath, args...); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}

// GetAheadBehind returns how many commits the current branch is ahead/behind the remote.
// Returns 0, 0 if there's no tracking branch (not an error condition).
func (s *GitService) GetAheadBehind(repoPath string) (int, int, error) {
	output, _ := s.runGitCommandOutput(repoPath, "rev-list", "--left-right", "--count", "@{u}...HEAD")
	if output == "" {
		return 0, 0, nil
	}

	parts := strings.Fields(strings.TrimSpace(output))
	if len(parts) != 2 {
		return 0, 0, nil
	}

	var behind, ahead int
	fmt.Sscanf(parts[0], "%d", &behind)
	fmt.Sscanf(parts[1], "%d", &ahead)
	return ahead, behind, nil
}

// runGitCommand executes a git command and returns an error if it fails.
func (s *GitService) runGitCommand(repoPath string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, stderr.String())
	}
	return nil
}

// runGitCommandOutput executes a git command and returns the stdout.
func (s *GitService) runGitCommandOutput(repoPath string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, stderr.String())
	}
	return stdout.String(), nil
}
