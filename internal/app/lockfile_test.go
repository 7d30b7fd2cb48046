package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLockFile_AcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".dailyctl", "update.lock")

	lock := NewLockFile(path)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("lock file not created: %v", err)
	}

	lock.Release()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("lock file not removed on release")
	}
}

func TestLockFile_SecondAcquireFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update.lock")

	first := NewLockFile(path)
	if err := first.Acquire(); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	defer first.Release()

	second := NewLockFile(path)
	err := second.Acquire()
	if err == nil {
		second.Release()
		t.Fatal("expected second acquire to fail")
	}
	if !strings.Contains(err.Error(), "already running") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLockFile_ReclaimsStaleLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update.lock")

	if err := os.WriteFile(path, []byte("12345\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	old := time.Now().Add(-2 * staleLockAge)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("failed to age lock file: %v", err)
	}

	lock := NewLockFile(path)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("expected stale lock to be reclaimed: %v", err)
	}
	lock.Release()
}

func TestLockFile_ReleaseWithoutAcquire(t *testing.T) {
	lock := NewLockFile(filepath.Join(t.TempDir(), "update.lock"))
	// Must not panic or touch the path
	lock.Release()
}
