// Package cache keeps recent list responses per resource until they expire
// or the resource is invalidated.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	data    []byte
	expires time.Time
}

type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]map[string]entry
}

// New returns a cache whose entries live for ttl. A zero ttl disables it.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]map[string]entry),
	}
}

func (c *Cache) Get(resource, key string) ([]byte, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[resource][key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.entries[resource], key)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) Set(resource, key string, data []byte) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.entries[resource]
	if !ok {
		bucket = make(map[string]entry)
		c.entries[resource] = bucket
	}
	bucket[key] = entry{data: data, expires: c.now().Add(c.ttl)}
}

// Invalidate drops every entry cached for resource.
func (c *Cache) Invalidate(resource string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, resource)
}

func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]map[string]entry)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, bucket := range c.entries {
		n += len(bucket)
	}
	return n
}
