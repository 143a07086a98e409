package classify

import (
	"strings"
	"time"
)

// Option applies a configuration option to the Classifier.
type Option func(*Config)

// WithLiveGrace sets how far before now a kickoff still counts as live.
func WithLiveGrace(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.LiveGrace = d
		}
	}
}

// WithFinishedMarkers replaces the finished status set.
func WithFinishedMarkers(markers ...string) Option {
	return func(c *Config) {
		if len(markers) > 0 {
			c.FinishedMarkers = lower(markers)
		}
	}
}

// WithLiveMarkers replaces the live status set.
func WithLiveMarkers(markers ...string) Option {
	return func(c *Config) {
		if len(markers) > 0 {
			c.LiveMarkers = lower(markers)
		}
	}
}

func lower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
