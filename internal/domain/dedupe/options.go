package dedupe

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of ids kept in memory.
// If maxSize > 0 the oldest id is evicted first.
// If maxSize <= 0 the deduper is unbounded, which is the default.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}
