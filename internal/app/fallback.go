package app

import (
	"context"
	"time"

	"github.com/Official-DomG/matchbot/internal/domain/classify"
	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/pkg/logger"
	"github.com/Official-DomG/matchbot/pkg/metrics"
)

const dateLayout = "2006-01-02"

// FallbackConfig sizes the rolling window tried when the primary plan
// yields nothing.
type FallbackConfig struct {
	Enabled      bool
	UpcomingDays int
	ResultsHours int
}

// DefaultFallbackConfig returns the standard rolling window.
func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{Enabled: true, UpcomingDays: 7, ResultsHours: 48}
}

// Plan is one collector pass: the days to query and the windows to
// classify against.
type Plan struct {
	Dates   []string
	Windows classify.Windows
}

// Outcome is the collection a run reports, plus how it was obtained.
type Outcome struct {
	*Collection
	FallbackUsed         bool
	FallbackUpcomingDays int
	FallbackResultsHours int
}

// Fallback runs a primary plan and, if it comes back empty, one rolling
// plan whose output replaces it.
type Fallback struct {
	collector *Collector
	cfg       FallbackConfig
	loc       *time.Location
	logger    logger.Logger
}

// NewFallback wraps c.
func NewFallback(c *Collector, cfg FallbackConfig, opts ...FallbackOption) *Fallback {
	f := &Fallback{collector: c, cfg: cfg, loc: time.UTC}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = logger.Get().Named("fallback")
	}
	return f
}

// Run collects primary and falls back at most once.
func (f *Fallback) Run(ctx context.Context, leagues []model.League, primary Plan, now time.Time) (*Outcome, error) {
	col, err := f.collector.Collect(ctx, leagues, primary.Dates, primary.Windows)
	if err != nil {
		return nil, err
	}
	out := &Outcome{
		Collection:           col,
		FallbackUpcomingDays: f.cfg.UpcomingDays,
		FallbackResultsHours: f.cfg.ResultsHours,
	}
	if !f.cfg.Enabled || !col.Empty() {
		return out, nil
	}

	plan := RollingPlan(now, f.loc, f.cfg)
	f.logger.Info(ctx, "primary window empty; using fallback",
		logger.Int("upcoming_days", f.cfg.UpcomingDays),
		logger.Int("results_hours", f.cfg.ResultsHours),
		logger.Int("dates", len(plan.Dates)),
	)
	metrics.RecordFallback()

	col, err = f.collector.Collect(ctx, leagues, plan.Dates, plan.Windows)
	if err != nil {
		return nil, err
	}
	out.Collection = col
	out.FallbackUsed = true
	return out, nil
}

// RollingPlan covers results from the last ResultsHours and fixtures over
// the next UpcomingDays, querying every day from today through the last
// upcoming day in loc.
func RollingPlan(now time.Time, loc *time.Location, cfg FallbackConfig) Plan {
	now = now.In(loc)
	end := now.AddDate(0, 0, cfg.UpcomingDays)
	return Plan{
		Dates: DateRange(now, end),
		Windows: classify.Windows{
			Now:           now,
			ResultsStart:  now.Add(-time.Duration(cfg.ResultsHours) * time.Hour),
			ResultsEnd:    now,
			UpcomingStart: now,
			UpcomingEnd:   end,
		},
	}
}

// DateRange lists calendar days from from through to, inclusive, as
// YYYY-MM-DD in from's zone.
func DateRange(from, to time.Time) []string {
	to = to.In(from.Location())
	day := civil(from)
	last := civil(to)

	var out []string
	for !day.After(last) {
		out = append(out, day.Format(dateLayout))
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// civil truncates t to midnight of its calendar day in its own zone.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
