// Package rating turns league standings into a synthetic strength score per team.
//
// The score is Elo-like but not calibrated: it is a linear blend of points and
// goal difference per game relative to the league average, clamped to a band.
package rating

import (
	"context"

	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/pkg/logger"
)

// Default rating constants.
const (
	DefaultBase    = 1500.0
	DefaultPPG     = 420.0
	DefaultGD      = 65.0
	DefaultMin     = 1200.0
	DefaultMax     = 1800.0
	DefaultNeutral = 1500.0
)

// Config holds the rating formula constants.
type Config struct {
	Base      float64 // rating of a perfectly average team
	PPGWeight float64 // points per game weight
	GDWeight  float64 // goal difference per game weight
	Min       float64
	Max       float64
	Neutral   float64 // prior for teams missing from the table
}

// DefaultConfig returns the standard constants.
func DefaultConfig() Config {
	return Config{
		Base:      DefaultBase,
		PPGWeight: DefaultPPG,
		GDWeight:  DefaultGD,
		Min:       DefaultMin,
		Max:       DefaultMax,
		Neutral:   DefaultNeutral,
	}
}

// Builder converts standings rows into Ratings.
type Builder struct {
	cfg    Config
	logger logger.Logger
}

// NewBuilder creates a Builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logger.Get().Named("rating")
	}
	return b
}

// Neutral returns the prior used for teams without a rating.
func (b *Builder) Neutral() float64 { return b.cfg.Neutral }

type perGame struct {
	team string
	ppg  float64
	gdpg float64
}

// Build computes ratings for every row with a team name and at least one
// match played. It never fails; malformed numeric fields count as zero.
func (b *Builder) Build(ctx context.Context, rows []model.TableRow) *Ratings {
	out := NewRatings()

	valid := make([]perGame, 0, len(rows))
	for _, row := range rows {
		team := row.Team.String()
		played := row.Played.Int()
		if team == "" || played <= 0 {
			continue
		}
		valid = append(valid, perGame{
			team: team,
			ppg:  float64(row.Points.Int()) / float64(played),
			gdpg: float64(row.GoalDifference.Int()) / float64(played),
		})
	}
	if len(valid) == 0 {
		b.logger.Debug(ctx, "no usable table rows", logger.Int("rows", len(rows)))
		return out
	}

	var sumPPG, sumGD float64
	for _, v := range valid {
		sumPPG += v.ppg
		sumGD += v.gdpg
	}
	avgPPG := sumPPG / float64(len(valid))
	avgGD := sumGD / float64(len(valid))

	for _, v := range valid {
		r := b.cfg.Base + (v.ppg-avgPPG)*b.cfg.PPGWeight + (v.gdpg-avgGD)*b.cfg.GDWeight
		out.Set(v.team, clamp(r, b.cfg.Min, b.cfg.Max))
	}

	b.logger.Debug(ctx, "ratings built", logger.Int("teams", out.Len()), logger.Int("skipped", len(rows)-len(valid)))
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
