package app

import (
	"context"
	"time"

	"github.com/Official-DomG/matchbot/internal/adapters/sportsdb"
	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/internal/domain/types"
)

// Provider supplies standings and fixtures. Lookups never fail; a fault is
// carried in the result next to empty data.
type Provider interface {
	FetchTable(ctx context.Context, leagueID int) sportsdb.TableResult
	FetchEventsDay(ctx context.Context, date, leagueLabel string) sportsdb.EventsResult
}

// LeagueResolver maps configured leagues to provider ids and labels.
type LeagueResolver interface {
	ResolveLeagues(ctx context.Context, specs []sportsdb.LeagueSpec) []model.League
}

// Notifier delivers operator messages.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// ReportWriter stores a run's records and returns where they went.
type ReportWriter interface {
	Write(ctx context.Context, records []model.Record, now time.Time) (string, error)
}

// RunStore keeps run summaries for the HTTP surface.
type RunStore interface {
	Save(ctx context.Context, run types.RunSummary) error
}
