package cli

import (
	"context"
	"time"

	"github.com/example/dailyctl/internal/wire"
)

// recordRun stores a run in the history database, best effort. History
// being unavailable never changes a command's outcome or exit code.
func recordRun(ctx context.Context, command, outcome, detail string, exitCode int, startedAt time.Time) {
	history, err := wire.History()
	if err != nil {
		return
	}
	_ = history.RecordRun(ctx, command, outcome, detail, exitCode, startedAt)
}
