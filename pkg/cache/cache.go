// Package cache provides a TTL-based in-memory cache for provider responses.
//
// Entries expire lazily: an entry older than the TTL is deleted the next
// time it is observed by Get. There is no background sweep and no size
// bound; the working set here is a handful of ticker lookups.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a cached provider response stays fresh.
const DefaultTTL = 60 * time.Minute

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is a TTL key-value store safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time

	sf singleflight.Group
}

// Option configures a Cache created with New.
type Option func(*Cache)

// WithTTL overrides the default 60 minute TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithClock injects a clock, used by tests to simulate time advancing.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache with the default 60 minute TTL.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key, or false if the key is missing or stale.
// A stale entry is evicted on observation.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	ent, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().Sub(ent.fetchedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// replaced the entry since the read.
		if cur, ok := c.entries[key]; ok && cur.fetchedAt.Equal(ent.fetchedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return ent.value, true
}

// Put stores a value under key, replacing any previous entry. Values must
// not be mutated after insertion.
func (c *Cache) Put(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or invokes load to produce it.
// Concurrent misses for the same key are collapsed into a single load call,
// which keeps provider rate limits intact when sessions race. A successful
// load is stored before returning; a failed load caches nothing.
func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// Another waiter may have populated the cache while this
		// goroutine queued behind the flight.
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(key, v)
		return v, nil
	})
	return v, err
}

// Len reports the number of entries currently held, including any not yet
// observed as stale.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
