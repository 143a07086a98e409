package csvreport_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Official-DomG/matchbot/internal/adapters/export/csvreport"
	"github.com/Official-DomG/matchbot/internal/domain/model"
	"github.com/Official-DomG/matchbot/internal/domain/types"
	"github.com/Official-DomG/matchbot/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func intp(v int) *int { return &v }

func base(id string) model.Base {
	return model.Base{
		Match: model.Match{
			ID:      id,
			League:  "Premier League",
			Kickoff: time.Date(2025, 3, 8, 15, 0, 0, 0, time.UTC),
			Home:    "Arsenal",
			Away:    "Chelsea",
			Status:  "Match Finished",
		},
		Prediction:   model.Prediction{Home: 0.523456, Draw: 0.25, Away: 0.226544, Pick: types.Home},
		KickoffLocal: "2025-03-08 15:00",
	}
}

func TestRow(t *testing.T) {
	Convey("Given a result record", t, func() {
		b := base("100")
		b.HomeScore, b.AwayScore = intp(2), intp(1)
		row := csvreport.Row(model.ResultRecord{Base: b, Actual: types.Home, Hit: true})

		Convey("Then it carries score, actual and hit", func() {
			So(row["type"], ShouldEqual, "RESULT")
			So(row["score"], ShouldEqual, "2-1")
			So(row["actual"], ShouldEqual, "HOME")
			So(row["hit"], ShouldEqual, "YES")
			So(row["p_home"], ShouldEqual, "0.5235")
			So(row["p_draw"], ShouldEqual, "0.25")
			So(row["source"], ShouldEqual, "SportsDB")
			So(row["idEvent"], ShouldEqual, "100")
		})
	})

	Convey("Given a live record without scores", t, func() {
		row := csvreport.Row(model.LiveRecord{Base: base("101")})

		Convey("Then score is present but empty", func() {
			v, ok := row["score"]
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "")
			_, hasHit := row["hit"]
			So(hasHit, ShouldBeFalse)
		})
	})

	Convey("Given an upcoming record", t, func() {
		row := csvreport.Row(model.UpcomingRecord{Base: base("102")})

		Convey("Then there is no score column", func() {
			_, ok := row["score"]
			So(ok, ShouldBeFalse)
			So(row["type"], ShouldEqual, "UPCOMING")
		})
	})
}

func TestHeader(t *testing.T) {
	Convey("Given rows with different columns", t, func() {
		header := csvreport.Header([]map[string]string{
			{"type": "UPCOMING", "home": "A"},
			{"score": "1-0", "actual": "HOME"},
		})

		Convey("Then the header is their sorted union", func() {
			So(header, ShouldResemble, []string{"actual", "home", "score", "type"})
		})
	})
}

func TestWriter_Write(t *testing.T) {
	ctx := context.Background()
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	now := time.Date(2025, 7, 5, 9, 30, 0, 0, time.UTC)

	Convey("Given a writer into a temp dir", t, func() {
		dir := filepath.Join(t.TempDir(), "reports")
		w := csvreport.New(
			csvreport.WithDir(dir),
			csvreport.WithPrefix("run"),
			csvreport.WithLocation(london),
		)

		Convey("When there are no records", func() {
			path, err := w.Write(ctx, nil, now)

			Convey("Then no file is written", func() {
				So(err, ShouldBeNil)
				So(path, ShouldBeEmpty)
				_, statErr := os.Stat(dir)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When records are written", func() {
			b := base("100")
			b.HomeScore, b.AwayScore = intp(0), intp(0)
			records := []model.Record{
				model.ResultRecord{Base: b, Actual: types.Draw, Hit: false},
				model.UpcomingRecord{Base: base("200")},
			}
			path, err := w.Write(ctx, records, now)
			So(err, ShouldBeNil)

			Convey("Then the file name is stamped in the report zone", func() {
				So(path, ShouldEqual, filepath.Join(dir, "run_2025-07-05_1030.csv"))
			})

			Convey("Then missing columns are blank", func() {
				f, err := os.Open(path)
				So(err, ShouldBeNil)
				defer f.Close()
				lines, err := csv.NewReader(f).ReadAll()
				So(err, ShouldBeNil)
				So(len(lines), ShouldEqual, 3)

				header := lines[0]
				col := func(name string) int {
					for i, h := range header {
						if h == name {
							return i
						}
					}
					return -1
				}
				So(header[0], ShouldEqual, "actual")
				So(lines[1][col("hit")], ShouldEqual, "NO")
				So(lines[1][col("score")], ShouldEqual, "0-0")
				So(lines[2][col("score")], ShouldEqual, "")
				So(lines[2][col("type")], ShouldEqual, "UPCOMING")
			})
		})
	})
}
