// Package probability converts a pair of strength ratings into a 1X2 distribution.
package probability

import (
	"math"

	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/internal/domain/types"
)

// Default model constants.
const (
	DefaultHomeAdvantage = 55.0
	DefaultDrawBase      = 0.24
	DefaultDrawTightness = 260.0
	DefaultDrawMin       = 0.08
	DefaultDrawMax       = 0.35

	eloScale = 400.0
)

// Config holds the model constants.
type Config struct {
	HomeAdvantage float64 // rating points added to the home side
	DrawBase      float64 // draw probability between equal sides
	DrawTightness float64 // rating gap over which draw probability decays by 1/e
	DrawMin       float64
	DrawMax       float64
}

// DefaultConfig returns the standard constants.
func DefaultConfig() Config {
	return Config{
		HomeAdvantage: DefaultHomeAdvantage,
		DrawBase:      DefaultDrawBase,
		DrawTightness: DefaultDrawTightness,
		DrawMin:       DefaultDrawMin,
		DrawMax:       DefaultDrawMax,
	}
}

// Model computes match outcome probabilities. It is stateless and safe for
// concurrent use.
type Model struct {
	cfg Config
}

// New creates a Model with configuration options.
func New(opts ...Option) *Model {
	m := &Model{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the constants in effect.
func (m *Model) Config() Config { return m.cfg }

// Predict returns the distribution and pick for a home side rated home
// against an away side rated away.
func (m *Model) Predict(home, away float64) model.Prediction {
	h, d, a := m.Probabilities(home, away)
	return model.Prediction{Home: h, Draw: d, Away: a, Pick: Pick(h, d, a)}
}

// Probabilities returns (pHome, pDraw, pAway) summing to 1.
func (m *Model) Probabilities(home, away float64) (float64, float64, float64) {
	adjusted := home + m.cfg.HomeAdvantage
	pHomeRaw := WinProbability(adjusted, away)

	gap := math.Abs(adjusted - away)
	pDraw := m.cfg.DrawBase * math.Exp(-gap/m.cfg.DrawTightness)
	pDraw = math.Max(m.cfg.DrawMin, math.Min(m.cfg.DrawMax, pDraw))

	remaining := 1 - pDraw
	pHome := remaining * pHomeRaw
	pAway := remaining * (1 - pHomeRaw)

	sum := pHome + pDraw + pAway
	return pHome / sum, pDraw / sum, pAway / sum
}

// WinProbability is the logistic chance that a side rated a beats a side
// rated b, ignoring draws.
func WinProbability(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/eloScale))
}

// Pick selects a single label. HOME wins ties with either other outcome and
// AWAY wins ties with DRAW.
func Pick(home, draw, away float64) types.Outcome {
	if home >= draw && home >= away {
		return types.Home
	}
	if away >= home && away >= draw {
		return types.Away
	}
	return types.Draw
}

// Actual labels a final score.
func Actual(homeGoals, awayGoals int) types.Outcome {
	switch {
	case homeGoals > awayGoals:
		return types.Home
	case awayGoals > homeGoals:
		return types.Away
	default:
		return types.Draw
	}
}
