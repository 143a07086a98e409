// Package classify assigns matches to lifecycle buckets and orders the
// resulting collections.
package classify

import (
	"time"

	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/internal/domain/types"
)

// DefaultLiveGrace is how long after kickoff an unfinished match counts as live.
const DefaultLiveGrace = 120 * time.Minute

// Default status markers, compared against the trimmed lower-case status.
var (
	DefaultFinishedMarkers = []string{"match finished", "ft", "finished", "aet", "pen"}
	DefaultLiveMarkers     = []string{"in play", "live", "1h", "2h", "ht", "1st half", "2nd half"}
)

// Windows are the instants a run classifies against. Bounds are inclusive.
type Windows struct {
	Now           time.Time
	ResultsStart  time.Time
	ResultsEnd    time.Time
	UpcomingStart time.Time
	UpcomingEnd   time.Time
}

// Config holds the classifier thresholds.
type Config struct {
	LiveGrace       time.Duration
	FinishedMarkers []string
	LiveMarkers     []string
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		LiveGrace:       DefaultLiveGrace,
		FinishedMarkers: DefaultFinishedMarkers,
		LiveMarkers:     DefaultLiveMarkers,
	}
}

// Classifier evaluates matches against Windows.
type Classifier struct {
	grace    time.Duration
	finished map[string]struct{}
	live     map[string]struct{}
}

// New creates a Classifier with configuration options.
func New(opts ...Option) *Classifier {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Classifier{
		grace:    cfg.LiveGrace,
		finished: set(cfg.FinishedMarkers),
		live:     set(cfg.LiveMarkers),
	}
}

// Finished reports whether m is over: a finished status, or both scores known.
func (c *Classifier) Finished(m model.Match) bool {
	if _, ok := c.finished[m.StatusKey]; ok {
		return true
	}
	return m.HasScores()
}

// Classify returns the bucket for m, or false when m is outside every window
// of interest. Rules are applied in order and the first match wins:
//
//  1. finished with both scores and kickoff in the results range: RESULT;
//     any other finished match is dropped.
//  2. a live status, or kickoff within the grace period up to now: LIVE.
//  3. kickoff in the upcoming range: UPCOMING.
func (c *Classifier) Classify(m model.Match, w Windows) (types.Bucket, bool) {
	if c.Finished(m) {
		if m.HasScores() && within(m.Kickoff, w.ResultsStart, w.ResultsEnd) {
			return types.Result, true
		}
		return "", false
	}

	if _, ok := c.live[m.StatusKey]; ok {
		return types.Live, true
	}
	if within(m.Kickoff, w.Now.Add(-c.grace), w.Now) {
		return types.Live, true
	}

	if within(m.Kickoff, w.UpcomingStart, w.UpcomingEnd) {
		return types.Upcoming, true
	}
	return "", false
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func set(markers []string) map[string]struct{} {
	out := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		out[m] = struct{}{}
	}
	return out
}
