package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"paybridge/pkg/logger"
	"paybridge/pkg/metric"
)

type LRUCache[K comparable, V any] struct {
	name    string
	items   map[K]*list.Element
	lruList *list.List
	mutex   sync.Mutex
	log     logger.Logger
	metrics metric.Cache

	capacity    int
	cleanupStop chan struct{}
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

// NewLRUCache builds a bounded cache. The name labels its metric
// series, so two caches in one process stay distinguishable.
func NewLRUCache[K comparable, V any](
	name string,
	capacity int,
	log logger.Logger,
	metrics metric.Cache,
) (*LRUCache[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache.NewLRUCache: capacity must be positive, got %d", capacity)
	}

	return &LRUCache[K, V]{
		name:     name,
		capacity: capacity,
		items:    make(map[K]*list.Element),
		lruList:  list.New(),
		log:      log,
		metrics:  metrics,
	}, nil
}

func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mutex.Lock()
	defer c.mutex.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.metrics.Miss(c.name)
		return zero, false
	}

	e := elem.Value.(*entry[K, V])
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		c.removeElement(elem)
		c.metrics.Miss(c.name)
		return zero, false
	}

	c.lruList.MoveToFront(elem)
	c.metrics.Hit(c.name)

	return e.value, true
}

func (c *LRUCache[K, V]) Put(key K, value V, ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry[K, V])
		c.lruList.MoveToFront(elem)
		e.value = value
		e.expires = expires
		return
	}

	if c.lruList.Len() >= c.capacity {
		if oldest := c.lruList.Back(); oldest != nil {
			c.removeElement(oldest)
			c.metrics.Eviction(c.name)
		}
	}

	c.items[key] = c.lruList.PushFront(&entry[K, V]{
		key:     key,
		value:   value,
		expires: expires,
	})
}

func (c *LRUCache[K, V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lruList.Len()
}

func (c *LRUCache[K, V]) Capacity() int {
	return c.capacity
}

func (c *LRUCache[K, V]) Purge() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.lruList.Init()
	clear(c.items)
}

// StartCleanup launches a background sweep of expired entries. Calling
// it again restarts the sweep with the new interval.
func (c *LRUCache[K, V]) StartCleanup(interval time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.cleanupStop != nil {
		close(c.cleanupStop)
	}
	c.cleanupStop = make(chan struct{})

	go c.runCleanup(interval, c.cleanupStop)
}

func (c *LRUCache[K, V]) StopCleanup() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.cleanupStop != nil {
		close(c.cleanupStop)
		c.cleanupStop = nil
	}
}

func (c *LRUCache[K, V]) runCleanup(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-stop:
			return
		}
	}
}

func (c *LRUCache[K, V]) cleanupExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	var expired []*list.Element

	for _, elem := range c.items {
		e := elem.Value.(*entry[K, V])
		if !e.expires.IsZero() && now.After(e.expires) {
			expired = append(expired, elem)
		}
	}

	for _, elem := range expired {
		c.removeElement(elem)
	}

	if len(expired) > 0 {
		c.log.Infow("cache cleanup completed",
			"cache", c.name,
			"removed", len(expired),
			"remaining", c.lruList.Len(),
		)
	}
}

// removeElement expects the mutex to be held.
func (c *LRUCache[K, V]) removeElement(elem *list.Element) {
	c.lruList.Remove(elem)
	delete(c.items, elem.Value.(*entry[K, V]).key)
}
