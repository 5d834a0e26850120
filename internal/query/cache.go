package query

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// parseCache is a bounded cache mapping raw query strings to their parsed
// trees. Repeated identical query strings (the common shape when one saved
// search is evaluated against a stream of records) skip tokenizing and
// parsing entirely.
//
// Entries are keyed by the xxhash digest of the raw string; the stored raw
// string is compared on lookup so a hash collision degrades to a miss, never
// to a wrong tree.
//
// Eviction strategy: when the cache reaches its capacity limit the entire
// map is replaced. This is simpler than a true LRU and sufficient for the
// target use-case of a small number of distinct query templates repeated
// many times.
//
// Thread safety: all methods are safe for concurrent use.
type parseCache struct {
	mu    sync.RWMutex
	items map[uint64]cacheEntry
	max   int
}

type cacheEntry struct {
	raw   string
	group *Group
}

func newParseCache(max int) *parseCache {
	return &parseCache{
		items: make(map[uint64]cacheEntry, max),
		max:   max,
	}
}

var globalParseCache = newParseCache(256)

func (c *parseCache) get(key uint64, raw string) (*Group, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || e.raw != raw {
		return nil, false
	}
	return e.group, true
}

func (c *parseCache) put(key uint64, raw string, g *Group) {
	c.mu.Lock()
	if len(c.items) >= c.max {
		// Evict everything and start fresh rather than tracking entry ages.
		c.items = make(map[uint64]cacheEntry, c.max)
	}
	c.items[key] = cacheEntry{raw: raw, group: g}
	c.mu.Unlock()
}

// CachedParse retrieves the parse tree for raw from a process-level bounded
// cache, parsing on a miss. The second result reports whether the tree came
// from the cache.
//
// The returned tree is shared with other callers: it MUST be treated as
// read-only. Callers that want to mutate the result use Parse, or Clone the
// cached tree first.
func CachedParse(raw string) (*Group, bool) {
	if raw == "" {
		return &Group{}, false
	}
	key := xxhash.Sum64String(raw)
	if g, ok := globalParseCache.get(key, raw); ok {
		return g, true
	}
	g := Parse(raw)
	globalParseCache.put(key, raw, g)
	return g, false
}
