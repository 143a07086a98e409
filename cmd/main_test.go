package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/Official-DomG/matchbot/internal/app"
	"github.com/Official-DomG/matchbot/internal/config"
	"github.com/Official-DomG/matchbot/internal/domain/types"
	"github.com/Official-DomG/matchbot/internal/fakeprovider"
	"github.com/Official-DomG/matchbot/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestBuild(t *testing.T) {
	convey.Convey("Given a config pointing at the fake provider", t, func() {
		ctx := context.Background()
		now := time.Date(2025, 3, 8, 16, 0, 0, 0, time.UTC)
		srv := httptest.NewServer(fakeprovider.New(now))
		defer srv.Close()

		cfg := config.New()
		cfg.SportsDB.BaseURL = srv.URL
		cfg.SportsDB.RatePerSecond = 1000
		cfg.SportsDB.Burst = 10
		cfg.OutDir = t.TempDir()
		cfg.CSVPrefix = "test"

		job, store, err := build(cfg, logger.Get(), app.WithClock(func() time.Time { return now }))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the job runs on a Saturday", func() {
			sum, err := job.Run(ctx)

			convey.Convey("Then it completes and records the run", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(sum.Status, convey.ShouldEqual, types.RunOK)
				convey.So(sum.Leagues, convey.ShouldResemble, []string{"Premier League", "EFL Championship"})
				convey.So(sum.Results, convey.ShouldBeGreaterThan, 0)
				convey.So(store.Count(ctx), convey.ShouldEqual, 1)

				latest, err := store.Latest(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(latest.ID, convey.ShouldEqual, sum.ID)
			})

			convey.Convey("Then the CSV report lands in the configured directory", func() {
				convey.So(sum.CSVPath, convey.ShouldStartWith, cfg.OutDir)
				convey.So(sum.CSVPath, convey.ShouldContainSubstring, "test_2025-03-08_1600.csv")
				_, err := os.Stat(sum.CSVPath)
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})

	convey.Convey("Given an unknown timezone", t, func() {
		cfg := config.New()
		cfg.Timezone = "Mars/Olympus"

		_, _, err := build(cfg, logger.Get())
		convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}

func TestCronLogger(t *testing.T) {
	convey.Convey("Given a cron logger over a JSON logger", t, func() {
		var buf bytes.Buffer
		convey.So(logger.Init(logger.WithOutput(&buf), logger.WithFormat("json")), convey.ShouldBeNil)
		defer func() { _ = logger.Init() }()

		cl := cronLogger{ctx: context.Background(), log: logger.Get()}

		convey.Convey("Error records the error and key/value pairs", func() {
			cl.Error(errors.New("boom"), "job panicked", "entry", 3, "dangling")
			out := buf.String()
			convey.So(out, convey.ShouldContainSubstring, `"msg":"job panicked"`)
			convey.So(out, convey.ShouldContainSubstring, `"entry":3`)
			convey.So(out, convey.ShouldContainSubstring, "boom")
			convey.So(strings.Contains(out, "dangling"), convey.ShouldBeFalse)
		})

		convey.Convey("Info is demoted to debug", func() {
			cl.Info("wake", "now", "x")
			convey.So(buf.String(), convey.ShouldBeEmpty)
		})
	})
}
