// Package normalize parses raw provider events into canonical matches.
package normalize

import (
	"strings"
	"time"

	"github.com/Official-DomG/matchbot/internal/domain/model"
)

// Accepted kickoff layouts, tried in order. Provider times are UTC.
const (
	layoutSeconds = "2006-01-02 15:04:05"
	layoutMinutes = "2006-01-02 15:04"
	midnight      = "00:00:00"
)

// Event converts raw into a Match for league. It fails with ErrForeignLeague
// when the event declares a different non-zero league id, and with
// ErrNoKickoff when no instant can be derived from its date and time.
func Event(raw model.RawEvent, league model.League) (model.Match, error) {
	if id := raw.LeagueID.Int(); id != 0 && id != league.ID {
		return model.Match{}, ErrForeignLeague
	}

	kickoff, ok := Kickoff(raw.Date.String(), raw.Time.String())
	if !ok {
		return model.Match{}, ErrNoKickoff
	}

	return model.Match{
		ID:        raw.ID.String(),
		League:    league.Name,
		Kickoff:   kickoff,
		Home:      raw.HomeTeam.String(),
		Away:      raw.AwayTeam.String(),
		HomeScore: score(raw.HomeScore),
		AwayScore: score(raw.AwayScore),
		Status:    raw.Status.String(),
		StatusKey: StatusKey(raw.Status.String()),
	}, nil
}

// Kickoff parses a calendar date and an optional clock time as a UTC instant.
// A missing time means midnight; a missing date is never parseable.
func Kickoff(date, clock string) (time.Time, bool) {
	if date == "" {
		return time.Time{}, false
	}
	if clock == "" {
		clock = midnight
	}
	value := date + " " + clock
	if t, err := time.ParseInLocation(layoutSeconds, value, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(layoutMinutes, value, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// StatusKey is the comparison form of a provider status.
func StatusKey(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func score(v model.Loose) *int {
	if v.Blank() {
		return nil
	}
	n := v.Int()
	return &n
}
