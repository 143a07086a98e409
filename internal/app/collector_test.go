package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Official-DomG/matchbot/internal/app"
	"github.com/Official-DomG/matchbot/internal/domain/classify"
	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

const epl = "English Premier League"

var (
	now     = time.Date(2025, 3, 8, 16, 0, 0, 0, time.UTC) // Saturday
	windows = classify.Windows{
		Now:           now,
		ResultsStart:  now.Add(-36 * time.Hour),
		ResultsEnd:    now,
		UpcomingStart: now,
		UpcomingEnd:   now.Add(32 * time.Hour),
	}
	premier = model.League{Name: "Premier League", ID: 4328, Label: epl}
)

func seeded() *stubProvider {
	p := newStub()
	p.tables[4328] = []model.TableRow{
		row("Team A", 10, 20, 10),
		row("Team B", 10, 10, 0),
	}
	p.add(epl, "2025-03-07",
		ev{id: "1", league: "4328", home: "Team A", away: "Team B", date: "2025-03-07", clock: "20:00:00", status: "FT", hg: intp(2), ag: intp(1)}.raw(),
	)
	p.add(epl, "2025-03-08",
		// repeated from the previous day
		ev{id: "1", league: "4328", home: "Team A", away: "Team B", date: "2025-03-07", clock: "20:00:00", status: "FT", hg: intp(2), ag: intp(1)}.raw(),
		ev{id: "2", league: "4328", home: "Team A", away: "Team B", date: "2025-03-08", clock: "16:10:00"}.raw(),
		ev{id: "3", league: "4328", home: "Team B", away: "Team A", date: "2025-03-08", clock: "15:20", status: "1st half"}.raw(),
		ev{id: "4", league: "9999", home: "X", away: "Y", date: "2025-03-08", clock: "15:00:00"}.raw(),
		ev{id: "5", league: "4328", home: "Team A", away: "Team B", clock: "15:00:00"}.raw(),
		ev{id: "6", league: "4328", home: "Team A", away: "Team B", date: "2025-03-01", clock: "15:00:00", status: "FT", hg: intp(0), ag: intp(0)}.raw(),
	)
	return p
}

func TestCollector_Collect(t *testing.T) {
	ctx := context.Background()

	Convey("Given a provider with one week of fixtures", t, func() {
		p := seeded()
		c, err := app.NewCollector(p)
		So(err, ShouldBeNil)

		col, err := c.Collect(ctx, []model.League{premier}, []string{"2025-03-07", "2025-03-08"}, windows)
		So(err, ShouldBeNil)

		Convey("Then a finished match in the results window is a RESULT with its actual outcome", func() {
			So(len(col.Results), ShouldEqual, 1)
			r := col.Results[0]
			So(r.ID, ShouldEqual, "1")
			So(r.Actual, ShouldEqual, types.Home)
			So(r.Prediction.Pick, ShouldEqual, types.Home)
			So(r.Hit, ShouldBeTrue)
			So(r.KickoffLocal, ShouldEqual, "2025-03-07 20:00")
		})

		Convey("Then an id seen on two days yields one record", func() {
			count := 0
			for _, rec := range col.All {
				if rec.Common().ID == "1" {
					count++
				}
			}
			So(count, ShouldEqual, 1)
		})

		Convey("Then a scoreless fixture ten minutes out is UPCOMING", func() {
			So(len(col.Upcoming), ShouldEqual, 1)
			So(col.Upcoming[0].ID, ShouldEqual, "2")
		})

		Convey("Then a first-half match that kicked off 40 minutes ago is LIVE", func() {
			So(len(col.Live), ShouldEqual, 1)
			So(col.Live[0].ID, ShouldEqual, "3")
			So(col.Live[0].Prediction.Pick, ShouldEqual, types.Away)
		})

		Convey("Then foreign, undated and stale events are dropped", func() {
			So(len(col.All), ShouldEqual, 3)
		})

		Convey("Then the tally counts the evaluated result", func() {
			So(col.Tally, ShouldResemble, model.Tally{Correct: 1, Total: 1})
			So(col.Faults, ShouldEqual, 0)
			So(col.Empty(), ShouldBeFalse)
		})

		Convey("Then the table is fetched once and every date is queried", func() {
			So(p.tableCalls, ShouldResemble, []int{4328})
			So(p.eventCalls, ShouldResemble, []string{epl + "|2025-03-07", epl + "|2025-03-08"})
		})

		Convey("Then predictions sum to one", func() {
			for _, rec := range col.All {
				pr := rec.Common().Prediction
				So(pr.Home+pr.Draw+pr.Away, ShouldAlmostEqual, 1.0, 1e-9)
			}
		})
	})

	Convey("Given a league without a provider id", t, func() {
		p := seeded()
		c, _ := app.NewCollector(p)

		col, err := c.Collect(ctx, []model.League{{Name: "Unknown"}}, []string{"2025-03-08"}, windows)

		Convey("Then it is skipped without fetching", func() {
			So(err, ShouldBeNil)
			So(col.Empty(), ShouldBeTrue)
			So(p.tableCalls, ShouldBeEmpty)
			So(p.eventCalls, ShouldBeEmpty)
		})
	})

	Convey("Given a table fetch that fails", t, func() {
		p := seeded()
		p.failTables[4328] = true
		c, _ := app.NewCollector(p)

		col, err := c.Collect(ctx, []model.League{premier}, []string{"2025-03-07", "2025-03-08"}, windows)

		Convey("Then events are still classified on neutral ratings and the fault is counted", func() {
			So(err, ShouldBeNil)
			So(col.Faults, ShouldEqual, 1)
			So(len(col.All), ShouldEqual, 3)
			So(col.Upcoming[0].Prediction.Pick, ShouldEqual, types.Home)
		})
	})

	Convey("Given dedup is per league", t, func() {
		p := seeded()
		champ := model.League{Name: "EFL Championship", ID: 4329, Label: "English League Championship"}
		p.add(champ.Label, "2025-03-08",
			ev{id: "2", league: "4329", home: "Leeds", away: "Hull", date: "2025-03-08", clock: "17:00:00"}.raw(),
		)
		c, _ := app.NewCollector(p)

		col, err := c.Collect(ctx, []model.League{premier, champ}, []string{"2025-03-08"}, windows)

		Convey("Then the same id in another league is kept", func() {
			So(err, ShouldBeNil)
			So(len(col.Upcoming), ShouldEqual, 2)
			So(col.Upcoming[0].KickoffLocal, ShouldEqual, "2025-03-08 16:10")
			So(col.Upcoming[1].League, ShouldEqual, "EFL Championship")
		})
	})

	Convey("Given the context is cancelled mid-pass", t, func() {
		p := seeded()
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()
		p.cancel, p.cancelAfter = cancel, 1
		c, _ := app.NewCollector(p)

		col, err := c.Collect(cctx, []model.League{premier}, []string{"2025-03-07", "2025-03-08"}, windows)

		Convey("Then the pass stops before the next fetch", func() {
			So(col, ShouldBeNil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(len(p.eventCalls), ShouldEqual, 1)
		})
	})

	Convey("Given no provider", t, func() {
		_, err := app.NewCollector(nil)
		So(errors.Is(err, app.ErrNoProvider), ShouldBeTrue)
	})
}
