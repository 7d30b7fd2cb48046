// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/dailyctl/internal/ports/secondary"
)

// RunRepository is the SQLite-backed run history.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with an injected DB.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Record inserts a run record and returns its ID.
func (r *RunRepository) Record(ctx context.Context, record *secondary.RunRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (command, outcome, detail, exit_code, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.Command, record.Outcome, record.Detail, record.ExitCode,
		record.StartedAt, record.FinishedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	record.ID = id
	return id, nil
}

// List returns runs matching the filters, newest first.
func (r *RunRepository) List(ctx context.Context, filters secondary.RunFilters) ([]*secondary.RunRecord, error) {
	query := `SELECT id, command, outcome, detail, exit_code, started_at, finished_at FROM runs`
	var conds []string
	var args []any

	if filters.Command != "" {
		conds = append(conds, "command = ?")
		args = append(args, filters.Command)
	}
	if filters.Outcome != "" {
		conds = append(conds, "outcome = ?")
		args = append(args, filters.Outcome)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY started_at DESC, id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*secondary.RunRecord
	for rows.Next() {
		record := &secondary.RunRecord{}
		if err := rows.Scan(&record.ID, &record.Command, &record.Outcome, &record.Detail,
			&record.ExitCode, &record.StartedAt, &record.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// PruneOlderThan deletes runs started more than days ago and returns
// the deleted count.
func (r *RunRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Ensure RunRepository implements the interface
var _ secondary.RunRepository = (*RunRepository)(nil)
