// Package config defines job configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and environment variables on top.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // reporting zone must resolve on slim images
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log records.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address used in schedule mode, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Schedule is a cron expression. Empty means run once and exit.
	Schedule string `koanf:"schedule"`

	// Timezone is the reporting zone for windows and display strings.
	Timezone string `koanf:"timezone"`

	// RunDays lists the weekdays a run does real work, comma separated
	// (mon..sun). Other days send a heartbeat only.
	RunDays string `koanf:"run_days"`

	// DeployMarker is stamped in logs and in every digest.
	DeployMarker string `koanf:"deploy_marker"`

	// OutDir and CSVPrefix place the per-run CSV report.
	OutDir    string `koanf:"out_dir"`
	CSVPrefix string `koanf:"csv_prefix"`

	SportsDB SportsDBConfig `koanf:"sportsdb"`
	Telegram TelegramConfig `koanf:"telegram"`
	Model    ModelConfig    `koanf:"model"`
	Rating   RatingConfig   `koanf:"rating"`
	Windows  WindowsConfig  `koanf:"windows"`
	Fallback FallbackConfig `koanf:"fallback"`

	// Leagues are the tracked competitions, in report order.
	Leagues []LeagueConfig `koanf:"leagues"`
}

// SportsDBConfig configures the provider client.
type SportsDBConfig struct {
	BaseURL       string        `koanf:"base_url"`
	APIKey        string        `koanf:"api_key"`
	Timeout       time.Duration `koanf:"timeout"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	Burst         int           `koanf:"burst"`
}

// TelegramConfig configures digest delivery.
type TelegramConfig struct {
	Token  string `koanf:"token"`
	ChatID string `koanf:"chat_id"`
	MaxLen int    `koanf:"max_len"`
}

// ModelConfig mirrors probability.Config.
type ModelConfig struct {
	HomeAdvantage float64 `koanf:"home_advantage"`
	DrawBase      float64 `koanf:"draw_base"`
	DrawTightness float64 `koanf:"draw_tightness"`
	DrawMin       float64 `koanf:"draw_min"`
	DrawMax       float64 `koanf:"draw_max"`
}

// RatingConfig mirrors rating.Config.
type RatingConfig struct {
	Base      float64 `koanf:"base"`
	PPGWeight float64 `koanf:"ppg_weight"`
	GDWeight  float64 `koanf:"gd_weight"`
	Min       float64 `koanf:"min"`
	Max       float64 `koanf:"max"`
}

// WindowsConfig sizes the primary classification windows.
type WindowsConfig struct {
	LiveGraceMinutes     int `koanf:"live_grace_minutes"`
	ResultsLookbackHours int `koanf:"results_lookback_hours"`
}

// FallbackConfig sizes the rolling window used when the primary one is empty.
type FallbackConfig struct {
	Enabled      bool `koanf:"enabled"`
	UpcomingDays int  `koanf:"upcoming_days"`
	ResultsHours int  `koanf:"results_hours"`
}

// LeagueConfig names a tracked league and its static resolution fallback.
type LeagueConfig struct {
	Name          string   `koanf:"name"`
	FallbackID    int      `koanf:"fallback_id"`
	FallbackLabel string   `koanf:"fallback_label"`
	Aliases       []string `koanf:"aliases"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":9080",
		Timezone:     "Europe/London",
		RunDays:      "thu,fri,sat,sun",
		DeployMarker: "V-C4-ALLMATCHES-THU-SUN-ASCII-001",
		OutDir:       "/tmp/matchbot_reports",
		CSVPrefix:    "matchbot_c4",
		SportsDB: SportsDBConfig{
			BaseURL:       "https://www.thesportsdb.com/api/v1/json",
			APIKey:        "123",
			Timeout:       25 * time.Second,
			RatePerSecond: 2,
			Burst:         2,
		},
		Telegram: TelegramConfig{
			MaxLen: 3800,
		},
		Model: ModelConfig{
			HomeAdvantage: 55,
			DrawBase:      0.24,
			DrawTightness: 260,
			DrawMin:       0.08,
			DrawMax:       0.35,
		},
		Rating: RatingConfig{
			Base:      1500,
			PPGWeight: 420,
			GDWeight:  65,
			Min:       1200,
			Max:       1800,
		},
		Windows: WindowsConfig{
			LiveGraceMinutes:     120,
			ResultsLookbackHours: 36,
		},
		Fallback: FallbackConfig{
			Enabled:      true,
			UpcomingDays: 7,
			ResultsHours: 48,
		},
		Leagues: []LeagueConfig{
			{
				Name:          "Premier League",
				FallbackID:    4328,
				FallbackLabel: "English Premier League",
				Aliases:       []string{"premier league", "english premier league"},
			},
			{
				Name:          "EFL Championship",
				FallbackID:    4329,
				FallbackLabel: "English League Championship",
				Aliases:       []string{"efl championship", "english league championship", "championship"},
			},
		},
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// Weekdays parses RunDays. Full day names are accepted too.
func (c *Config) Weekdays() ([]time.Weekday, error) {
	var out []time.Weekday
	for _, part := range strings.Split(c.RunDays, ",") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if len(p) > 3 {
			p = p[:3]
		}
		d, ok := weekdays[p]
		if !ok {
			return nil, fmt.Errorf("%w: run_days entry %q", ErrInvalidConfig, part)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: run_days is empty", ErrInvalidConfig)
	}
	return out, nil
}

// Validate checks the values a run cannot work without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.SportsDB.BaseURL) == "":
		return fmt.Errorf("%w: sportsdb.base_url must not be empty", ErrInvalidConfig)
	case c.SportsDB.Timeout <= 0:
		return fmt.Errorf("%w: sportsdb.timeout must be positive", ErrInvalidConfig)
	case c.Windows.ResultsLookbackHours < 0 || c.Windows.LiveGraceMinutes < 0:
		return fmt.Errorf("%w: windows must not be negative", ErrInvalidConfig)
	case c.Fallback.UpcomingDays < 0 || c.Fallback.ResultsHours < 0:
		return fmt.Errorf("%w: fallback windows must not be negative", ErrInvalidConfig)
	case c.Model.DrawMin > c.Model.DrawMax:
		return fmt.Errorf("%w: model.draw_min exceeds model.draw_max", ErrInvalidConfig)
	case c.Rating.Min > c.Rating.Max:
		return fmt.Errorf("%w: rating.min exceeds rating.max", ErrInvalidConfig)
	case c.Schedule != "" && c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty in schedule mode", ErrInvalidConfig)
	}
	for i, l := range c.Leagues {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("%w: leagues[%d].name must not be empty", ErrInvalidConfig, i)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Weekdays(); err != nil {
		return err
	}
	return nil
}
