package dashboard

import (
	"sync"

	"churnboard/domain/core"
)

// summaryCache is a bounded cache of computed summaries keyed by filter hash.
// The oldest entry is evicted first. A capacity of zero disables caching.
type summaryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[core.FilterHash]*Summary
	order    []core.FilterHash
}

func newSummaryCache(capacity int) *summaryCache {
	return &summaryCache{
		capacity: capacity,
		entries:  make(map[core.FilterHash]*Summary),
	}
}

func (c *summaryCache) get(key core.FilterHash) (*Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[key]
	return s, ok
}

func (c *summaryCache) put(key core.FilterHash, s *Summary) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = s
		return
	}
	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = s
	c.order = append(c.order, key)
}

func (c *summaryCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[core.FilterHash]*Summary)
	c.order = nil
}

func (c *summaryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
