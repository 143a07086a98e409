// Package dedupe tracks provider event ids seen during one league scan.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen event ids so overlapping day queries emit each event once.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	// Empty ids are never recorded and always report false.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the number of distinct ids recorded.
	Size() int64
}

// inMemoryDeduper implements Deduper with a map. In bounded mode the oldest
// id is forgotten once maxSize ids are held.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string // insertion order, only kept in bounded mode
	maxSize int      // 0 or negative means unbounded
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	return d
}

// SeenAndRecord implements Deduper.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	if id == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 {
		if len(d.seen) >= d.maxSize {
			oldest := d.order[0]
			d.order = d.order[1:]
			delete(d.seen, oldest)
			d.size.Add(-1)
		}
		d.order = append(d.order, id)
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

// Size implements Deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
