// Package types contains the enumerations and summaries shared across the
// pipeline and its HTTP surface.
package types

import "time"

// Outcome is a 1X2 label for a match, either predicted or observed.
type Outcome string

// Outcome values.
const (
	Home Outcome = "HOME"
	Draw Outcome = "DRAW"
	Away Outcome = "AWAY"
)

// Bucket is the lifecycle classification assigned to a match for one run.
type Bucket string

// Bucket values.
const (
	Result   Bucket = "RESULT"
	Live     Bucket = "LIVE"
	Upcoming Bucket = "UPCOMING"
)

// Valid reports whether b is one of the known buckets.
func (b Bucket) Valid() bool {
	switch b {
	case Result, Live, Upcoming:
		return true
	}
	return false
}

// RunStatus is the terminal state of one job run.
type RunStatus string

// RunStatus values.
const (
	RunOK      RunStatus = "ok"
	RunSkipped RunStatus = "skipped"
	RunFailed  RunStatus = "failed"
)

// RunSummary describes one finished job run.
type RunSummary struct {
	ID           string    `json:"id"`
	Status       RunStatus `json:"status"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
	Leagues      []string  `json:"leagues,omitempty"`
	Dates        []string  `json:"dates,omitempty"`
	FallbackUsed bool      `json:"fallbackUsed"`
	Results      int       `json:"results"`
	Live         int       `json:"live"`
	Upcoming     int       `json:"upcoming"`
	Correct      int       `json:"correct"`
	Evaluated    int       `json:"evaluated"`
	Accuracy     float64   `json:"accuracy"`
	Faults       int       `json:"faults"`
	CSVPath      string    `json:"csvPath,omitempty"`
	Error        string    `json:"error,omitempty"`
}
