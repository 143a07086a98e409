package classify_test

import (
	"testing"
	"time"

	classify "github.com/Official-DomG/matchbot/internal/domain/classify"
	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2025, 3, 8, 18, 0, 0, 0, time.UTC)

func windows() classify.Windows {
	return classify.Windows{
		Now:           now,
		ResultsStart:  now.Add(-36 * time.Hour),
		ResultsEnd:    now,
		UpcomingStart: now,
		UpcomingEnd:   now.Add(48 * time.Hour),
	}
}

func scores(h, a int) (*int, *int) { return &h, &a }

func TestClassifier_Classify(t *testing.T) {
	c := classify.New()
	w := windows()

	Convey("Given a full-time match inside the results window", t, func() {
		h, a := scores(2, 1)
		m := model.Match{Kickoff: now.Add(-3 * time.Hour), StatusKey: "ft", HomeScore: h, AwayScore: a}

		Convey("Then it is a RESULT", func() {
			b, ok := c.Classify(m, w)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Result)
		})

		Convey("Then classifying twice gives the same bucket", func() {
			b1, ok1 := c.Classify(m, w)
			b2, ok2 := c.Classify(m, w)
			So(b1, ShouldEqual, b2)
			So(ok1, ShouldEqual, ok2)
		})
	})

	Convey("Given a match with both scores but no status", t, func() {
		h, a := scores(0, 0)
		m := model.Match{Kickoff: now.Add(-5 * time.Hour), HomeScore: h, AwayScore: a}

		Convey("Then the scores alone mark it finished", func() {
			So(c.Finished(m), ShouldBeTrue)
			b, ok := c.Classify(m, w)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Result)
		})
	})

	Convey("Given a finished match before the results window", t, func() {
		h, a := scores(1, 1)
		m := model.Match{Kickoff: now.Add(-40 * time.Hour), StatusKey: "match finished", HomeScore: h, AwayScore: a}

		Convey("Then it is dropped", func() {
			_, ok := c.Classify(m, w)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a finished status without scores", t, func() {
		m := model.Match{Kickoff: now.Add(-30 * time.Minute), StatusKey: "ft"}

		Convey("Then it is dropped even inside the live grace period", func() {
			_, ok := c.Classify(m, w)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a first-half match that kicked off 40 minutes ago", t, func() {
		m := model.Match{Kickoff: now.Add(-40 * time.Minute), StatusKey: "1st half"}

		Convey("Then it is LIVE", func() {
			b, ok := c.Classify(m, w)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Live)
		})

		Convey("Then it is LIVE regardless of window boundaries", func() {
			b, ok := c.Classify(m, classify.Windows{Now: now})
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Live)
		})
	})

	Convey("Given a live status far from now", t, func() {
		m := model.Match{Kickoff: now.Add(-10 * time.Hour), StatusKey: "ht"}

		Convey("Then the status alone makes it LIVE", func() {
			b, ok := c.Classify(m, w)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Live)
		})
	})

	Convey("Given a silent match that kicked off within the grace period", t, func() {
		m := model.Match{Kickoff: now.Add(-119 * time.Minute)}

		Convey("Then it is LIVE", func() {
			b, _ := c.Classify(m, w)
			So(b, ShouldEqual, types.Live)
		})

		Convey("And with a shorter grace it falls out of every window", func() {
			short := classify.New(classify.WithLiveGrace(10 * time.Minute))
			_, ok := short.Classify(m, w)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a match kicking off in 10 minutes with no status or scores", t, func() {
		m := model.Match{Kickoff: now.Add(10 * time.Minute)}

		Convey("Then it is UPCOMING", func() {
			b, ok := c.Classify(m, w)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Upcoming)
		})
	})

	Convey("Given a match kicking off after the upcoming window", t, func() {
		m := model.Match{Kickoff: now.Add(72 * time.Hour)}

		Convey("Then it is dropped", func() {
			_, ok := c.Classify(m, w)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a match exactly on window bounds", t, func() {
		h, a := scores(3, 0)

		Convey("Then the bounds are inclusive", func() {
			b, ok := c.Classify(model.Match{Kickoff: w.ResultsStart, StatusKey: "ft", HomeScore: h, AwayScore: a}, w)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Result)

			b, ok = c.Classify(model.Match{Kickoff: w.UpcomingEnd}, w)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Upcoming)
		})
	})

	Convey("Given custom markers", t, func() {
		custom := classify.New(
			classify.WithFinishedMarkers("Full Time"),
			classify.WithLiveMarkers("Playing"),
		)

		Convey("Then only the configured markers apply", func() {
			So(custom.Finished(model.Match{StatusKey: "full time"}), ShouldBeTrue)
			So(custom.Finished(model.Match{StatusKey: "ft"}), ShouldBeFalse)

			b, ok := custom.Classify(model.Match{Kickoff: now.Add(-5 * time.Hour), StatusKey: "playing"}, w)
			So(ok, ShouldBeTrue)
			So(b, ShouldEqual, types.Live)
		})
	})
}

func TestSort(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	Convey("Given kickoffs rendered in London time", t, func() {
		So(classify.Display(time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC), london), ShouldEqual, "2025-07-01 15:00")
		So(classify.Display(time.Date(2025, 1, 1, 14, 0, 0, 0, time.UTC), london), ShouldEqual, "2025-01-01 14:00")
	})

	Convey("Given unordered results and upcoming matches", t, func() {
		results := []model.ResultRecord{
			{Base: model.Base{KickoffLocal: "2025-03-08 17:30", Match: model.Match{ID: "c"}}},
			{Base: model.Base{KickoffLocal: "2025-03-08 12:30", Match: model.Match{ID: "a"}}},
			{Base: model.Base{KickoffLocal: "2025-03-08 15:00", Match: model.Match{ID: "b"}}},
		}
		upcoming := []model.UpcomingRecord{
			{Base: model.Base{KickoffLocal: "2025-03-09 16:30", Match: model.Match{ID: "y"}}},
			{Base: model.Base{KickoffLocal: "2025-03-09 14:00", Match: model.Match{ID: "x"}}},
		}

		classify.SortResults(results)
		classify.SortUpcoming(upcoming)

		Convey("Then both are ascending by kickoff", func() {
			So([]string{results[0].ID, results[1].ID, results[2].ID}, ShouldResemble, []string{"a", "b", "c"})
			So([]string{upcoming[0].ID, upcoming[1].ID}, ShouldResemble, []string{"x", "y"})
		})
	})

	Convey("Given live matches", t, func() {
		live := []model.LiveRecord{
			{Base: model.Base{KickoffLocal: "2025-03-08 15:00", Match: model.Match{ID: "low"}, Prediction: model.Prediction{Home: 0.4, Draw: 0.3, Away: 0.3}}},
			{Base: model.Base{KickoffLocal: "2025-03-08 17:30", Match: model.Match{ID: "high-late"}, Prediction: model.Prediction{Home: 0.2, Draw: 0.2, Away: 0.6}}},
			{Base: model.Base{KickoffLocal: "2025-03-08 12:30", Match: model.Match{ID: "high-early"}, Prediction: model.Prediction{Home: 0.6, Draw: 0.2, Away: 0.2}}},
		}

		classify.SortLive(live)

		Convey("Then confidence leads and kickoff breaks ties", func() {
			So([]string{live[0].ID, live[1].ID, live[2].ID}, ShouldResemble, []string{"high-early", "high-late", "low"})
		})
	})
}
