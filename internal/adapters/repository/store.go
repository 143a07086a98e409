// Package repository keeps the summaries of recent job runs.
package repository

import (
	"context"

	"github.com/Official-DomG/matchbot/internal/domain/types"
)

// Store provides read/write access to run history.
type Store interface {
	// Save records a finished run. A run saved twice under the same id
	// replaces the earlier summary.
	Save(ctx context.Context, run types.RunSummary) error

	// Latest returns the most recently saved run.
	// Returns ErrNotFound if nothing was saved yet.
	Latest(ctx context.Context) (types.RunSummary, error)

	// Get returns the run with id.
	// Returns ErrNotFound if the run is unknown or was evicted.
	Get(ctx context.Context, id string) (types.RunSummary, error)

	// Recent returns up to n runs, newest first.
	Recent(ctx context.Context, n int) ([]types.RunSummary, error)

	// Count returns the number of runs held.
	Count(ctx context.Context) int
}
