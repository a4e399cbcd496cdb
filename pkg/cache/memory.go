package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an unbounded in-process cache.
//
// Each entry remembers when it was stored. Get returns an entry only while
// the time elapsed since storage is below the entry's TTL; otherwise the
// entry is removed and Get reports a miss. There is no size limit and no
// background sweep.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data     []byte
	storedAt time.Time
	ttl      time.Duration
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*MemoryCache)

// WithClock replaces the time source. Tests use it to simulate elapsed time.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a value from the cache, evicting it if it has expired.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.ttl > 0 && c.now().Sub(e.storedAt) >= e.ttl {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a copy of data under key.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{data: buf, storedAt: c.now(), ttl: ttl}
	return nil
}

// Delete removes key from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close does nothing for the memory cache.
func (c *MemoryCache) Close() error {
	return nil
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
