// Package cache provides the per-query in-memory response cache. Entries
// expire after a TTL and stale entries are purged opportunistically on every
// write; there is no background timer.
package cache

import (
	"sync"
	"time"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/timeutil"
)

// Entry is one cached payload with the instant it was stored.
type Entry[T any] struct {
	// Key is the fingerprint the entry was stored under
	Key string

	// Data is the cached payload
	Data T

	// Timestamp is when the entry was stored
	Timestamp time.Time
}

// Cache is a TTL-bounded in-memory cache keyed by query fingerprint.
// The clock is injected so tests control expiry; all methods are safe for
// concurrent use.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
	ttl     time.Duration
	clock   timeutil.Clock
}

// New creates a cache with the given TTL. A nil clock defaults to real time.
func New[T any](ttl time.Duration, clock timeutil.Clock) *Cache[T] {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Cache[T]{
		entries: make(map[string]Entry[T]),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the entry stored under key. Expired entries are reported as
// absent but left in place; Sweep removes them.
func (c *Cache[T]) Get(key string) (Entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !c.IsValid(entry) {
		return Entry[T]{}, false
	}
	return entry, true
}

// Set stores data under key and sweeps expired entries. Sweeping on every
// write keeps the map bounded without a background goroutine.
func (c *Cache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[T]{
		Key:       key,
		Data:      data,
		Timestamp: c.clock.Now(),
	}
	c.sweepLocked()
}

// IsValid reports whether the entry is within its TTL.
func (c *Cache[T]) IsValid(entry Entry[T]) bool {
	return c.clock.Now().Sub(entry.Timestamp) < c.ttl
}

// Age returns how long ago the entry was stored.
func (c *Cache[T]) Age(entry Entry[T]) time.Duration {
	return c.clock.Now().Sub(entry.Timestamp)
}

// ExpiresAt returns the instant the entry stops being valid.
func (c *Cache[T]) ExpiresAt(entry Entry[T]) time.Time {
	return entry.Timestamp.Add(c.ttl)
}

// Sweep removes every expired entry.
func (c *Cache[T]) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
}

func (c *Cache[T]) sweepLocked() {
	for key, entry := range c.entries {
		if !c.IsValid(entry) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
