package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// ResultCache is a thread-safe LRU cache for loaded score results,
// keyed by run ID.
type ResultCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	result *scoring.Result
}

// NewResultCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 20.
func NewResultCache(maxSize int) *ResultCache {
	if maxSize <= 0 {
		maxSize = 20
	}
	return &ResultCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewResultCacheFromEnv creates a cache with size from RESULT_CACHE_SIZE env var.
func NewResultCacheFromEnv() *ResultCache {
	size := 20
	if v := os.Getenv("RESULT_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewResultCache(size)
}

// Get retrieves a result from the cache, or nil if not found.
func (c *ResultCache) Get(runID string) *scoring.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[runID]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(runID)
	return entry.result
}

// Put adds a result to the cache, evicting the oldest if full.
func (c *ResultCache) Put(runID string, result *scoring.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[runID]; ok {
		c.entries[runID] = &cacheEntry{result: result}
		c.moveToEnd(runID)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[runID] = &cacheEntry{result: result}
	c.order = append(c.order, runID)
}

func (c *ResultCache) moveToEnd(runID string) {
	for i, k := range c.order {
		if k == runID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, runID)
			return
		}
	}
}
