package cache

import "sync"

// Cache is a generic thread-safe LRU cache. When it holds more than its
// limit, the least recently used entries are evicted. Create one with New.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	order   ring[K, V]
	limit   int
	onEvict func(K, V)

	hits, misses, evictions uint64
}

// New creates a cache holding at most limit entries. A limit of 0 means
// unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	c := &Cache[K, V]{
		entries: make(map[K]*entry[K, V]),
		limit:   limit,
	}
	c.order.init()
	return c
}

// OnEvict registers fn to be called with every entry removed by eviction,
// Delete or Clear. fn runs with the cache locked and must not call back into
// it.
func (c *Cache[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get retrieves a value and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.touch(e)
	return e.value, true
}

// Set stores a value, replacing any previous one for key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// GetOrCreate returns the cached value or stores the result of create.
// create runs under the lock, so concurrent callers never build the same
// value twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.order.touch(e)
		return e.value
	}
	c.misses++
	v := create()
	c.set(key, v)
	return v
}

func (c *Cache[K, V]) set(key K, value V) {
	if e, ok := c.entries[key]; ok {
		if c.onEvict != nil {
			c.onEvict(key, e.value)
		}
		e.value = value
		c.order.touch(e)
		return
	}
	e := &entry[K, V]{key: key, value: value}
	c.entries[key] = e
	c.order.pushFront(e)
	for c.limit > 0 && len(c.entries) > c.limit {
		c.remove(c.order.oldest())
		c.evictions++
	}
}

// remove unlinks e and reports it to the eviction callback.
func (c *Cache[K, V]) remove(e *entry[K, V]) {
	c.order.unlink(e)
	delete(c.entries, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}

// Delete removes an entry. It reports whether the entry was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.remove(e)
	return true
}

// Clear removes all entries, oldest first.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for e := c.order.oldest(); e != nil; e = c.order.oldest() {
		c.remove(e)
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}
