// Package dedupe removes duplicate plays from a listening history.
//
// Two plays are duplicates when they share the identity key (timestamp
// string as exported, track URI, milliseconds played). The first occurrence
// in input order always survives, so batch order matters and is preserved.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/replay/internal/domain/model"
)

// Key is the composite identity of a play. The timestamp is compared as the
// raw exported string, not as a parsed instant.
type Key struct {
	TS       string
	TrackURI string
	MsPlayed int64
}

// KeyOf computes the identity key for a play.
func KeyOf(p model.Play) Key {
	return Key{TS: p.TS, TrackURI: p.TrackURI, MsPlayed: p.MsPlayed}
}

// Deduper records seen identity keys.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key Key) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with a plain map guarded by a mutex.
// The seen set lives for a single pipeline run, so there is no eviction.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[Key]struct{}
	size atomic.Int64
}

// Option applies a configuration option to the in-memory Deduper.
type Option func(*inMemoryDeduper)

// WithCapacityHint pre-sizes the seen set for an expected number of plays.
func WithCapacityHint(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.seen = make(map[Key]struct{}, n)
		}
	}
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration
// options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen: make(map[Key]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SeenAndRecord atomically checks if key was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

// Size returns the current number of recorded keys.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// Deduplicate removes duplicate plays, keeping the first occurrence of each
// identity key and preserving the relative order of survivors. It returns
// the surviving plays and the number removed. An empty input yields an empty
// output and zero removed.
func Deduplicate(ctx context.Context, plays []model.Play) ([]model.Play, int) {
	d := NewInMemoryDeduper(WithCapacityHint(len(plays)))

	out := make([]model.Play, 0, len(plays))
	for _, p := range plays {
		if d.SeenAndRecord(ctx, KeyOf(p)) {
			continue
		}
		out = append(out, p)
	}
	return out, len(plays) - len(out)
}
