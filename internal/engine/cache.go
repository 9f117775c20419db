package engine

import "sync"

// FilterCache memoizes Apply results. Safe because Apply is a pure
// function of (store, selection) and views are read-only; the lock only
// guards the cache map itself.
type FilterCache struct {
	mu    sync.RWMutex
	store *ColumnStore
	views map[string]*View
}

// NewFilterCache wraps a store with a filter-result cache.
func NewFilterCache(store *ColumnStore) *FilterCache {
	return &FilterCache{store: store, views: make(map[string]*View)}
}

// Store returns the backing store.
func (c *FilterCache) Store() *ColumnStore { return c.store }

// Get returns the (possibly cached) filtered view for a selection.
func (c *FilterCache) Get(sel Selection) *View {
	key := c.store.SnapshotID + "\x1f" + sel.Key()

	c.mu.RLock()
	v, ok := c.views[key]
	c.mu.RUnlock()
	if ok {
		return v
	}

	v = c.store.Apply(sel)

	c.mu.Lock()
	// Another goroutine may have won the race; keep its view so callers
	// always observe one canonical view per selection.
	if prev, ok := c.views[key]; ok {
		v = prev
	} else {
		c.views[key] = v
	}
	c.mu.Unlock()
	return v
}
