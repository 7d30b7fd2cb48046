package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// staleLockAge is the age after which a leftover lock from a crashed
// run is reclaimed.
const staleLockAge = time.Hour

// LockFile is an exclusive filesystem lock scoped to one update run.
// Creation uses O_EXCL so two concurrent updaters cannot both win.
type LockFile struct {
	path string
	held bool
}

// NewLockFile creates a lock for the given path without acquiring it.
func NewLockFile(path string) *LockFile {
	return &LockFile{path: path}
}

// Acquire takes the lock, reclaiming it first if a previous holder left
// a stale file behind.
func (l *LockFile) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if os.IsExist(err) {
		if !l.reclaimStale() {
			return fmt.Errorf("another update is already running (lock held at %s)", l.path)
		}
		f, err = os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	}
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	fmt.Fprintln(f, strconv.Itoa(os.Getpid()))
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write lock: %w", err)
	}
	l.held = true
	return nil
}

// Release drops the lock. Safe to call on all exit paths, including
// when Acquire failed.
func (l *LockFile) Release() {
	if !l.held {
		return
	}
	l.held = false
	_ = os.Remove(l.path)
}

// reclaimStale removes the lock file if it is older than staleLockAge.
// Returns true if the path is free to retry.
func (l *LockFile) reclaimStale() bool {
	info, err := os.Stat(l.path)
	if err != nil {
		// Holder released between our open and stat
		return os.IsNotExist(err)
	}
	if time.Since(info.ModTime()) < staleLockAge {
		return false
	}
	return os.Remove(l.path) == nil
}
