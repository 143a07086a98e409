package app

import (
	"context"
	"errors"
	"time"

	"github.com/Official-DomG/matchbot/internal/domain/classify"
	"github.com/Official-DomG/matchbot/internal/domain/dedupe"
	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/internal/domain/normalize"
	"github.com/Official-DomG/matchbot/internal/domain/probability"
	"github.com/Official-DomG/matchbot/internal/domain/rating"
	"github.com/Official-DomG/matchbot/internal/domain/types"
	"github.com/Official-DomG/matchbot/pkg/logger"
	"github.com/Official-DomG/matchbot/pkg/metrics"
)

// Collection is the classified output of one collector pass.
type Collection struct {
	Results  []model.ResultRecord
	Live     []model.LiveRecord
	Upcoming []model.UpcomingRecord

	// All holds every record in emission order.
	All []model.Record

	Tally model.Tally

	// Faults counts fetches that came back empty because of a provider fault.
	Faults int
}

// Empty reports whether no bucket received a record.
func (c *Collection) Empty() bool {
	return len(c.Results) == 0 && len(c.Live) == 0 && len(c.Upcoming) == 0
}

// Collector turns provider data into classified, predicted records.
type Collector struct {
	provider   Provider
	ratings    *rating.Builder
	model      *probability.Model
	classifier *classify.Classifier
	loc        *time.Location
	logger     logger.Logger
}

// NewCollector creates a collector reading from p.
func NewCollector(p Provider, opts ...CollectorOption) (*Collector, error) {
	if p == nil {
		return nil, ErrNoProvider
	}
	c := &Collector{provider: p, loc: time.UTC}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("collector")
	}
	if c.ratings == nil {
		c.ratings = rating.NewBuilder(rating.WithLogger(c.logger))
	}
	if c.model == nil {
		c.model = probability.New()
	}
	if c.classifier == nil {
		c.classifier = classify.New()
	}
	return c, nil
}

// Collect scans every league over dates and classifies against w. Leagues
// without a provider id are skipped. Only cancellation of ctx stops a pass
// early; it is checked before every fetch.
func (c *Collector) Collect(ctx context.Context, leagues []model.League, dates []string, w classify.Windows) (*Collection, error) {
	out := &Collection{}

	for _, league := range leagues {
		if league.ID == 0 {
			c.logger.Debug(ctx, "league unresolved; skipped", logger.String("league", league.Name))
			continue
		}
		if err := c.league(ctx, league, dates, w, out); err != nil {
			return nil, err
		}
	}

	classify.SortResults(out.Results)
	classify.SortLive(out.Live)
	classify.SortUpcoming(out.Upcoming)

	c.logger.Info(ctx, "collection complete",
		logger.Int("results", len(out.Results)),
		logger.Int("live", len(out.Live)),
		logger.Int("upcoming", len(out.Upcoming)),
		logger.Int("evaluated", out.Tally.Total),
		logger.Int("faults", out.Faults),
	)
	return out, nil
}

func (c *Collector) league(ctx context.Context, league model.League, dates []string, w classify.Windows, out *Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	table := c.provider.FetchTable(ctx, league.ID)
	if table.Degraded() {
		out.Faults++
	}
	ratings := c.ratings.Build(ctx, table.Rows)
	neutral := c.ratings.Neutral()

	// One deduper per league so an event repeated across day queries is
	// emitted once.
	seen := dedupe.NewInMemoryDeduper()

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		res := c.provider.FetchEventsDay(ctx, date, league.Label)
		if res.Degraded() {
			out.Faults++
		}
		metrics.RecordEventsFetched(league.Name, len(res.Events))

		for _, raw := range res.Events {
			m, err := normalize.Event(raw, league)
			if err != nil {
				metrics.RecordEventDropped(dropReason(err))
				continue
			}
			if seen.SeenAndRecord(ctx, m.ID) {
				metrics.RecordEventDuplicate()
				c.logger.Debug(ctx, "duplicate event skipped", logger.String("id", m.ID), logger.String("date", date))
				continue
			}

			bucket, ok := c.classifier.Classify(m, w)
			if !ok {
				metrics.RecordEventDropped("out_of_window")
				continue
			}

			pred := c.model.Predict(ratings.For(m.Home, neutral), ratings.For(m.Away, neutral))
			base := model.Base{Match: m, Prediction: pred, KickoffLocal: classify.Display(m.Kickoff, c.loc)}
			out.add(bucket, base)
			metrics.RecordClassified(string(bucket))
		}
	}
	return nil
}

func (c *Collection) add(bucket types.Bucket, base model.Base) {
	switch bucket {
	case types.Result:
		actual := probability.Actual(*base.HomeScore, *base.AwayScore)
		rec := model.ResultRecord{Base: base, Actual: actual, Hit: base.Prediction.Pick == actual}
		c.Tally.Add(rec.Hit)
		c.Results = append(c.Results, rec)
		c.All = append(c.All, rec)
	case types.Live:
		rec := model.LiveRecord{Base: base}
		c.Live = append(c.Live, rec)
		c.All = append(c.All, rec)
	case types.Upcoming:
		rec := model.UpcomingRecord{Base: base}
		c.Upcoming = append(c.Upcoming, rec)
		c.All = append(c.All, rec)
	}
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, normalize.ErrForeignLeague):
		return "foreign_league"
	case errors.Is(err, normalize.ErrNoKickoff):
		return "no_kickoff"
	default:
		return "invalid"
	}
}
