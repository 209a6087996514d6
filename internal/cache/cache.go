// Package cache provides a small in-process LRU cache with TTL, used
// to memoize computed reports between spreadsheet reads.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	// Clear drops every entry. Called after an append since a new row
	// can change any period's report.
	Clear()
	Size() int
}

// LRUCache evicts by recency once maxSize is exceeded and lazily
// drops entries past their TTL.
type LRUCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func NewLRUCache[T any](maxSize int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}
	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}
	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *LRUCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{key: key, data: data, expiresAt: time.Now().Add(c.ttl)}
	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}
	c.items[key] = c.lru.PushFront(item)

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *LRUCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

func (c *LRUCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// CleanExpired removes expired entries and reports how many were removed.
func (c *LRUCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var toRemove []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*cacheItem[T]).expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}
	for _, elem := range toRemove {
		c.removeElement(elem)
	}
	return len(toRemove)
}

func (c *LRUCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}
