// Package secondary defines the persistence interfaces the application
// services depend on.
package secondary

import "context"

// RunRecord is one recorded pipeline run.
type RunRecord struct {
	ID         int64
	Command    string // update, verify, render, fetch, migrate
	Outcome    string // ok, failed, mismatch, ...
	Detail     string
	ExitCode   int
	StartedAt  string // RFC 3339 UTC
	FinishedAt string // RFC 3339 UTC
}

// RunFilters narrows a run history listing.
type RunFilters struct {
	Command string
	Outcome string
	Limit   int
}

// RunRepository persists the run history.
type RunRepository interface {
	Record(ctx context.Context, record *RunRecord) (int64, error)
	List(ctx context.Context, filters RunFilters) ([]*RunRecord, error)
	PruneOlderThan(ctx context.Context, days int) (int, error)
}
