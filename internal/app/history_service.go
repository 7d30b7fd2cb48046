package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/dailyctl/internal/ports/secondary"
)

// HistoryService records and queries pipeline runs. It is the audit
// trail complementing the append-only text log: the log holds the
// update routine's raw output, the history holds structured outcomes.
type HistoryService struct {
	runs secondary.RunRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(runs secondary.RunRepository) *HistoryService {
	return &HistoryService{runs: runs}
}

// RecordRun stores the outcome of one command invocation.
func (s *HistoryService) RecordRun(ctx context.Context, command, outcome, detail string, exitCode int, startedAt time.Time) error {
	record := &secondary.RunRecord{
		Command:    command,
		Outcome:    outcome,
		Detail:     detail,
		ExitCode:   exitCode,
		StartedAt:  startedAt.UTC().Format(time.RFC3339),
		FinishedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := s.runs.Record(ctx, record); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns recent runs, newest first.
func (s *HistoryService) ListRuns(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	records, err := s.runs.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return records, nil
}

// PruneRuns deletes runs older than the specified number of days.
func (s *HistoryService) PruneRuns(ctx context.Context, olderThanDays int) (int, error) {
	return s.runs.PruneOlderThan(ctx, olderThanDays)
}
