package model

import "github.com/Official-DomG/matchbot/internal/domain/types"

// Record is a classified match. The concrete type is selected by the bucket.
type Record interface {
	Bucket() types.Bucket
	Common() Base
}

// Base holds the fields every bucket shares.
type Base struct {
	Match
	Prediction   Prediction
	KickoffLocal string // kickoff in the reporting zone, "2006-01-02 15:04"
}

// ResultRecord is a finished match inside the results window.
type ResultRecord struct {
	Base
	Actual types.Outcome
	Hit    bool
}

// LiveRecord is a match in play.
type LiveRecord struct {
	Base
}

// UpcomingRecord is a match yet to start inside the upcoming window.
type UpcomingRecord struct {
	Base
}

func (ResultRecord) Bucket() types.Bucket   { return types.Result }
func (LiveRecord) Bucket() types.Bucket     { return types.Live }
func (UpcomingRecord) Bucket() types.Bucket { return types.Upcoming }

func (r ResultRecord) Common() Base   { return r.Base }
func (r LiveRecord) Common() Base     { return r.Base }
func (r UpcomingRecord) Common() Base { return r.Base }

// Tally counts evaluated predictions within one run.
type Tally struct {
	Correct int
	Total   int
}

// Add records one evaluated prediction.
func (t *Tally) Add(hit bool) {
	t.Total++
	if hit {
		t.Correct++
	}
}

// Accuracy returns the hit rate as a percentage, 0 when nothing was evaluated.
func (t Tally) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total) * 100
}
