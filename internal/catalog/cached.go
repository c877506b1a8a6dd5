package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/metrics"
)

// Cached decorates a Catalog with an LRU cache with TTL expiration, so a
// burst of line-item recomputes does not hammer the product store. Price
// freshness is bounded by the TTL; callers that need live prices (catalog
// refresh) should use the inner catalog directly.
type Cached struct {
	inner Catalog

	mu       sync.RWMutex
	capacity int
	ttl      time.Duration
	items    map[string]*cacheEntry
	head     *cacheEntry
	tail     *cacheEntry

	hits   int64
	misses int64
}

type cacheEntry struct {
	key       string
	value     model.ProductRecord
	expiresAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// NewCached wraps the given catalog with a product cache of the given
// capacity and TTL.
func NewCached(inner Catalog, capacity int, ttl time.Duration) *Cached {
	if capacity < 1 {
		capacity = 1
	}
	return &Cached{
		inner:    inner,
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*cacheEntry, capacity),
	}
}

// GetProduct serves from cache when possible, falling through to the inner
// catalog on miss or expiry. Lookup failures are never cached.
func (c *Cached) GetProduct(ctx context.Context, code string) (model.ProductRecord, error) {
	if product, ok := c.get(code); ok {
		atomic.AddInt64(&c.hits, 1)
		metrics.RecordCacheOperation("catalog_get", "hit")
		return product, nil
	}
	atomic.AddInt64(&c.misses, 1)
	metrics.RecordCacheOperation("catalog_get", "miss")

	product, err := c.inner.GetProduct(ctx, code)
	if err != nil {
		return model.ProductRecord{}, err
	}
	c.set(code, product)
	return product, nil
}

// ListProductsByCategory passes through to the inner catalog. Category
// listings are admin-path operations and not worth caching.
func (c *Cached) ListProductsByCategory(ctx context.Context, category string) ([]model.ProductRecord, error) {
	return c.inner.ListProductsByCategory(ctx, category)
}

// Invalidate drops a single product from the cache.
func (c *Cached) Invalidate(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.items[code]; ok {
		c.removeEntry(entry)
	}
}

// Clear drops every cached product.
func (c *Cached) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*cacheEntry, c.capacity)
	c.head = nil
	c.tail = nil
}

// Stats returns current hit/miss counters and size.
func (c *Cached) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
		Size:   len(c.items),
	}
}

func (c *Cached) get(code string) (model.ProductRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[code]
	if !ok {
		return model.ProductRecord{}, false
	}
	if time.Now().After(entry.expiresAt) {
		c.removeEntry(entry)
		return model.ProductRecord{}, false
	}
	c.moveToFront(entry)
	return entry.value, true
}

func (c *Cached) set(code string, product model.ProductRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[code]; ok {
		entry.value = product
		entry.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(entry)
		return
	}

	entry := &cacheEntry{
		key:       code,
		value:     product,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.items[code] = entry
	c.addToFront(entry)

	if len(c.items) > c.capacity {
		c.removeTail()
		metrics.RecordCacheOperation("catalog_evict", "capacity")
	}
}

func (c *Cached) removeEntry(entry *cacheEntry) {
	delete(c.items, entry.key)
	c.unlink(entry)
}

func (c *Cached) moveToFront(entry *cacheEntry) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.addToFront(entry)
}

func (c *Cached) addToFront(entry *cacheEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

func (c *Cached) unlink(entry *cacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
}

func (c *Cached) removeTail() {
	if c.tail == nil {
		return
	}
	delete(c.items, c.tail.key)
	c.unlink(c.tail)
}
