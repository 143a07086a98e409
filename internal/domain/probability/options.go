package probability

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithConfig replaces the model constants. Zero fields keep their defaults;
// a zero home advantage must be set with WithHomeAdvantage.
func WithConfig(c Config) Option {
	return func(m *Model) {
		if c.HomeAdvantage != 0 {
			m.cfg.HomeAdvantage = c.HomeAdvantage
		}
		if c.DrawBase > 0 {
			m.cfg.DrawBase = c.DrawBase
		}
		if c.DrawTightness > 0 {
			m.cfg.DrawTightness = c.DrawTightness
		}
		if c.DrawMin > 0 {
			m.cfg.DrawMin = c.DrawMin
		}
		if c.DrawMax > 0 {
			m.cfg.DrawMax = c.DrawMax
		}
	}
}

// WithHomeAdvantage sets the home offset, including zero.
func WithHomeAdvantage(points float64) Option {
	return func(m *Model) {
		m.cfg.HomeAdvantage = points
	}
}
