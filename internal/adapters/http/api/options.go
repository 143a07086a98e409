package api

// Option configures the runs handler.
type Option func(*RunsHandler)

// WithMaxLimit caps the limit accepted by GET /runs.
func WithMaxLimit(n int) Option {
	return func(h *RunsHandler) {
		if n > 0 {
			h.maxLimit = n
		}
	}
}
