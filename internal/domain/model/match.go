package model

import (
	"fmt"
	"time"

	"github.com/Official-DomG/matchbot/internal/domain/types"
)

// League identifies a tracked competition for one run.
type League struct {
	Name  string // logical name used in reports
	ID    int    // provider identifier, 0 when unresolved
	Label string // provider-side label used to filter day queries
}

// Match is the canonical view of one fixture.
type Match struct {
	ID        string
	League    string
	Kickoff   time.Time // UTC
	Home      string
	Away      string
	HomeScore *int // nil when not yet known
	AwayScore *int
	Status    string // as sent by the provider
	StatusKey string // trimmed, lower-cased Status
}

// HasScores reports whether both scores are known.
func (m Match) HasScores() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Score renders "h-a", or "" when either side is unknown.
func (m Match) Score() string {
	if !m.HasScores() {
		return ""
	}
	return fmt.Sprintf("%d-%d", *m.HomeScore, *m.AwayScore)
}

// Prediction is a 1X2 distribution with its single-label pick.
type Prediction struct {
	Home float64
	Draw float64
	Away float64
	Pick types.Outcome
}

// Confidence is the largest of the three probabilities.
func (p Prediction) Confidence() float64 {
	return max(p.Home, p.Draw, p.Away)
}
