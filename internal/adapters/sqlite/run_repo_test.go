package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/dailyctl/internal/ports/secondary"
)

func recordAt(command, outcome string, exitCode int, startedAt time.Time) *secondary.RunRecord {
	return &secondary.RunRecord{
		Command:    command,
		Outcome:    outcome,
		ExitCode:   exitCode,
		StartedAt:  startedAt.UTC().Format(time.RFC3339),
		FinishedAt: startedAt.UTC().Add(time.Second).Format(time.RFC3339),
	}
}

func TestRunRepository_RecordAndList(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	ctx := context.Background()

	rec := recordAt("verify", "ok", 0, time.Now())
	rec.Detail = "2026-02-06"
	id, err := repo.Record(ctx, rec)
	if err != nil {
		t.Fatalf("failed to record run: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}
	if rec.ID != id {
		t.Errorf("record.ID = %d, want %d", rec.ID, id)
	}

	runs, err := repo.List(ctx, secondary.RunFilters{})
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.Command != "verify" || got.Outcome != "ok" || got.Detail != "2026-02-06" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestRunRepository_ListOrderAndFilters(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	fixtures := []*secondary.RunRecord{
		recordAt("update", "pushed", 0, base),
		recordAt("verify", "ok", 0, base.Add(1*time.Hour)),
		recordAt("verify", "mismatch", 4, base.Add(2*time.Hour)),
		recordAt("update", "no-change", 0, base.Add(3*time.Hour)),
	}
	for _, rec := range fixtures {
		if _, err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		runs, err := repo.List(ctx, secondary.RunFilters{})
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 4 {
			t.Fatalf("got %d runs, want 4", len(runs))
		}
		if runs[0].Outcome != "no-change" || runs[3].Outcome != "pushed" {
			t.Errorf("wrong order: %s ... %s", runs[0].Outcome, runs[3].Outcome)
		}
	})

	t.Run("filter by command", func(t *testing.T) {
		runs, err := repo.List(ctx, secondary.RunFilters{Command: "verify"})
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("got %d runs, want 2", len(runs))
		}
		for _, r := range runs {
			if r.Command != "verify" {
				t.Errorf("unexpected command %s", r.Command)
			}
		}
	})

	t.Run("filter by outcome", func(t *testing.T) {
		runs, err := repo.List(ctx, secondary.RunFilters{Command: "verify", Outcome: "mismatch"})
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 || runs[0].ExitCode != 4 {
			t.Errorf("unexpected runs: %+v", runs)
		}
	})

	t.Run("limit", func(t *testing.T) {
		runs, err := repo.List(ctx, secondary.RunFilters{Limit: 2})
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("got %d runs, want 2", len(runs))
		}
	})
}

func TestRunRepository_ListEmpty(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	runs, err := repo.List(context.Background(), secondary.RunFilters{})
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestRunRepository_PruneOlderThan(t *testing.T) {
	repo := NewRunRepository(setupTestDB(t))
	ctx := context.Background()

	now := time.Now()
	for i, age := range []time.Duration{0, 24 * time.Hour, 40 * 24 * time.Hour, 90 * 24 * time.Hour} {
		rec := recordAt(fmt.Sprintf("update-%d", i), "ok", 0, now.Add(-age))
		if _, err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("failed to record run: %v", err)
		}
	}

	pruned, err := repo.PruneOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("failed to prune runs: %v", err)
	}
	if pruned != 2 {
		t.Errorf("pruned %d runs, want 2", pruned)
	}

	runs, err := repo.List(ctx, secondary.RunFilters{})
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs after prune, want 2", len(runs))
	}
}
