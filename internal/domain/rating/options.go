package rating

import "github.com/Official-DomG/matchbot/pkg/logger"

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithConfig replaces the formula constants. Zero fields keep their defaults.
func WithConfig(c Config) Option {
	return func(b *Builder) {
		if c.Base != 0 {
			b.cfg.Base = c.Base
		}
		if c.PPGWeight != 0 {
			b.cfg.PPGWeight = c.PPGWeight
		}
		if c.GDWeight != 0 {
			b.cfg.GDWeight = c.GDWeight
		}
		if c.Min != 0 {
			b.cfg.Min = c.Min
		}
		if c.Max != 0 {
			b.cfg.Max = c.Max
		}
		if c.Neutral != 0 {
			b.cfg.Neutral = c.Neutral
		}
	}
}

// WithLogger sets a custom logger for the builder.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}
