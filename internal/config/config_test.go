package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Official-DomG/matchbot/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry the standard job settings", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Timezone, convey.ShouldEqual, "Europe/London")
			convey.So(cfg.SportsDB.APIKey, convey.ShouldEqual, "123")
			convey.So(cfg.SportsDB.Timeout, convey.ShouldEqual, 25*time.Second)
			convey.So(cfg.Telegram.MaxLen, convey.ShouldEqual, 3800)
			convey.So(cfg.Windows.LiveGraceMinutes, convey.ShouldEqual, 120)
			convey.So(cfg.Windows.ResultsLookbackHours, convey.ShouldEqual, 36)
			convey.So(cfg.Fallback.UpcomingDays, convey.ShouldEqual, 7)
			convey.So(cfg.Fallback.ResultsHours, convey.ShouldEqual, 48)
			convey.So(cfg.Model.HomeAdvantage, convey.ShouldEqual, 55)
			convey.So(cfg.Rating.PPGWeight, convey.ShouldEqual, 420)
		})

		convey.Convey("Then it should track both English leagues", func() {
			convey.So(len(cfg.Leagues), convey.ShouldEqual, 2)
			convey.So(cfg.Leagues[0].FallbackID, convey.ShouldEqual, 4328)
			convey.So(cfg.Leagues[1].FallbackLabel, convey.ShouldEqual, "English League Championship")
		})

		convey.Convey("Then it should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Weekdays(t *testing.T) {
	convey.Convey("Given run day lists", t, func() {
		cfg := config.New()

		convey.Convey("When using the default", func() {
			days, err := cfg.Weekdays()
			convey.So(err, convey.ShouldBeNil)
			convey.So(days, convey.ShouldResemble, []time.Weekday{time.Thursday, time.Friday, time.Saturday, time.Sunday})
		})

		convey.Convey("When using full names and odd spacing", func() {
			cfg.RunDays = " Monday , WEDNESDAY,"
			days, err := cfg.Weekdays()
			convey.So(err, convey.ShouldBeNil)
			convey.So(days, convey.ShouldResemble, []time.Weekday{time.Monday, time.Wednesday})
		})

		convey.Convey("When an entry is unknown", func() {
			cfg.RunDays = "thu,funday"
			_, err := cfg.Weekdays()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the list is empty", func() {
			cfg.RunDays = " , "
			_, err := cfg.Weekdays()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid settings", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty base url", func(c *config.Config) { c.SportsDB.BaseURL = " " }},
			{"zero timeout", func(c *config.Config) { c.SportsDB.Timeout = 0 }},
			{"negative lookback", func(c *config.Config) { c.Windows.ResultsLookbackHours = -1 }},
			{"negative fallback", func(c *config.Config) { c.Fallback.UpcomingDays = -2 }},
			{"inverted draw band", func(c *config.Config) { c.Model.DrawMin = 0.5 }},
			{"inverted rating", func(c *config.Config) { c.Rating.Min = 2000 }},
			{"schedule no addr", func(c *config.Config) { c.Schedule = "@hourly"; c.Addr = "" }},
			{"unnamed league", func(c *config.Config) { c.Leagues[0].Name = "" }},
			{"unknown timezone", func(c *config.Config) { c.Timezone = "Mars/Olympus" }},
		}

		for _, tc := range cases {
			convey.Convey("When "+tc.name, func() {
				cfg := config.New()
				tc.mutate(cfg)
				err := cfg.Validate()

				convey.Convey("Then validation fails with ErrInvalidConfig", func() {
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
