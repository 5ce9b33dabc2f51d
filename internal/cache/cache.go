package cache

import (
	"fmt"
	"sync"
	"time"
)

// TTLCache is an explicit, injectable query-result cache. Instances are
// scoped to whoever constructs them (the application container, a test);
// nothing in this package holds process-wide state.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	clock   Clock
}

type entry struct {
	value    any
	storedAt time.Time
}

const defaultTTL = 5 * time.Minute

// New creates a TTLCache. A non-positive ttl falls back to 5 minutes,
// a nil clock to the real one.
func New(ttl time.Duration, clock Clock) *TTLCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &TTLCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Key builds a cache key from the queried table, the query arguments and the
// requesting user ("anonymous" when empty).
func Key(table string, args []any, userID string) string {
	if userID == "" {
		userID = "anonymous"
	}
	return fmt.Sprintf("%s:%v:%s", table, args, userID)
}

// Get returns the cached value for key if it is still fresh.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the current timestamp.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.clock.Now()}
}

// Invalidate removes a single key. Used by manual refresh.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
