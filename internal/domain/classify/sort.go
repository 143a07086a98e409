package classify

import (
	"cmp"
	"slices"
	"time"

	"github.com/Official-DomG/matchbot/internal/domain/model"
)

// DisplayLayout renders kickoffs for reports and for ordering.
const DisplayLayout = "2006-01-02 15:04"

// Display formats t in loc using DisplayLayout.
func Display(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayLayout)
}

// SortResults orders results by local kickoff string, ascending.
func SortResults(records []model.ResultRecord) {
	slices.SortStableFunc(records, func(a, b model.ResultRecord) int {
		return cmp.Compare(a.KickoffLocal, b.KickoffLocal)
	})
}

// SortUpcoming orders upcoming matches by local kickoff string, ascending.
func SortUpcoming(records []model.UpcomingRecord) {
	slices.SortStableFunc(records, func(a, b model.UpcomingRecord) int {
		return cmp.Compare(a.KickoffLocal, b.KickoffLocal)
	})
}

// SortLive orders live matches by prediction confidence, descending, then by
// local kickoff string.
func SortLive(records []model.LiveRecord) {
	slices.SortStableFunc(records, func(a, b model.LiveRecord) int {
		if c := cmp.Compare(b.Prediction.Confidence(), a.Prediction.Confidence()); c != 0 {
			return c
		}
		return cmp.Compare(a.KickoffLocal, b.KickoffLocal)
	})
}
