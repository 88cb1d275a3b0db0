package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/domain/projection"
)

// DefaultMemorySummaryEntries caps the in-process summary cache.
const DefaultMemorySummaryEntries = 1024

type memoryEntry struct {
	scope     string
	key       string
	summary   projection.Summary
	expiresAt time.Time
}

// memorySummaryCache is an LRU of summaries with a TTL.
type memorySummaryCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	items   map[string]*list.Element
	lru     *list.List
	gens    map[string]int64
}

// NewMemorySummaryCache creates an in-process summary cache.
func NewMemorySummaryCache(maxSize int, ttl time.Duration) adapter.SummaryCache {
	return newMemorySummaryCache(maxSize, ttl, time.Now)
}

func newMemorySummaryCache(maxSize int, ttl time.Duration, now func() time.Time) *memorySummaryCache {
	if maxSize <= 0 {
		maxSize = DefaultMemorySummaryEntries
	}
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &memorySummaryCache{
		maxSize: maxSize,
		ttl:     ttl,
		now:     now,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		gens:    make(map[string]int64),
	}
}

// Get returns the cached summary for key.
func (c *memorySummaryCache) Get(_ context.Context, scope, key string) (projection.Summary, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[scope+"\x00"+key]
	if !ok {
		return projection.Summary{}, false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if c.now().After(entry.expiresAt) {
		c.remove(elem)
		return projection.Summary{}, false, nil
	}

	c.lru.MoveToFront(elem)
	return entry.summary, true, nil
}

// Generation returns the number of invalidations of the scope.
func (c *memorySummaryCache) Generation(_ context.Context, scope string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[scope], nil
}

// Set stores a summary for key, evicting the least recently used entry when
// full. Summaries of an older generation are dropped.
func (c *memorySummaryCache) Set(_ context.Context, scope, key string, generation int64, summary projection.Summary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.gens[scope] {
		return nil
	}

	entry := &memoryEntry{
		scope:     scope,
		key:       key,
		summary:   summary,
		expiresAt: c.now().Add(c.ttl),
	}

	id := scope + "\x00" + key
	if elem, ok := c.items[id]; ok {
		elem.Value = entry
		c.lru.MoveToFront(elem)
		return nil
	}

	c.items[id] = c.lru.PushFront(entry)
	if c.lru.Len() > c.maxSize {
		c.remove(c.lru.Back())
	}
	return nil
}

// Invalidate drops every entry of the scope.
func (c *memorySummaryCache) Invalidate(_ context.Context, scope string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[scope]++
	for elem := c.lru.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*memoryEntry).scope == scope {
			c.remove(elem)
		}
		elem = next
	}
	return nil
}

func (c *memorySummaryCache) remove(elem *list.Element) {
	entry := elem.Value.(*memoryEntry)
	delete(c.items, entry.scope+"\x00"+entry.key)
	c.lru.Remove(elem)
}
