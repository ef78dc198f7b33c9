// Package snapshot persists timestamped collections as a single JSON record
// per key and decides when a record has gone stale.
package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mmcdole/tablemap/internal/domain"
)

// DefaultTTL is how long a snapshot is considered fresh
const DefaultTTL = 5 * time.Hour

// Entry is one persisted snapshot. It is replaced as a whole, never patched.
type Entry[T any] struct {
	Timestamp time.Time
	Items     []T
}

// record is the on-disk shape: {"timestamp": <epoch-ms>, "items": [...]}
type record[T any] struct {
	Timestamp int64 `json:"timestamp"`
	Items     []T   `json:"items"`
}

// Age returns how old the entry is relative to now
func (e Entry[T]) Age(now time.Time) time.Duration {
	return now.Sub(e.Timestamp)
}

// Cache reads and writes snapshots through a key-value store.
type Cache[T any] struct {
	kv     domain.KeyValueStore
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Cache
type Option func(*options)

type options struct {
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// WithTTL overrides DefaultTTL
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithClock injects the time source used for stamping and staleness
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger for soft failures
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a snapshot cache on top of kv.
func New[T any](kv domain.KeyValueStore, opts ...Option) *Cache[T] {
	o := options{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Cache[T]{kv: kv, ttl: o.ttl, now: o.now, logger: o.logger}
}

// TTL returns the freshness window
func (c *Cache[T]) TTL() time.Duration { return c.ttl }

// Now returns the cache clock's current time
func (c *Cache[T]) Now() time.Time { return c.now() }

// Read returns the snapshot stored under key. Storage and decode failures are
// logged and reported as a miss.
func (c *Cache[T]) Read(ctx context.Context, key string) (Entry[T], bool) {
	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		c.logger.Warn("snapshot read failed", "error", &domain.StorageError{Op: "read", Key: key, Err: err})
		return Entry[T]{}, false
	}
	if !ok {
		return Entry[T]{}, false
	}

	var rec record[T]
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		c.logger.Warn("snapshot decode failed", "error", &domain.StorageError{Op: "decode", Key: key, Err: err})
		return Entry[T]{}, false
	}

	return Entry[T]{Timestamp: time.UnixMilli(rec.Timestamp), Items: rec.Items}, true
}

// Write replaces the snapshot under key.
func (c *Cache[T]) Write(ctx context.Context, key string, entry Entry[T]) error {
	items := entry.Items
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(record[T]{Timestamp: entry.Timestamp.UnixMilli(), Items: items})
	if err != nil {
		return &domain.StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := c.kv.Set(ctx, key, string(data)); err != nil {
		return &domain.StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}

// Clear removes the snapshot under key
func (c *Cache[T]) Clear(ctx context.Context, key string) error {
	if err := c.kv.Delete(ctx, key); err != nil {
		return &domain.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Stamp wraps items in an entry timestamped with the cache clock
func (c *Cache[T]) Stamp(items []T) Entry[T] {
	return Entry[T]{Timestamp: c.now(), Items: items}
}

// IsStale reports whether the entry is older than the TTL. A stale entry is
// still a valid fallback while offline.
func (c *Cache[T]) IsStale(entry Entry[T]) bool {
	return entry.Age(c.now()) > c.ttl
}
