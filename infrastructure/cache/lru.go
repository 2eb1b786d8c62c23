package cache

import (
	"container/list"
	"sync"
)

// NamespaceLRU is a namespace-based LRU cache. A capacity of zero or less
// disables caching: Set is a no-op and Get always misses.
type NamespaceLRU[V any] struct {
	capacity int
	items    map[string]*list.Element
	queue    *list.List
	mutex    sync.Mutex
}

type entry[V any] struct {
	namespace string
	key       string
	value     V
}

// NewNamespaceLRU creates a new namespace-based LRU cache with specified capacity
func NewNamespaceLRU[V any](capacity int) *NamespaceLRU[V] {
	return &NamespaceLRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		queue:    list.New(),
	}
}

func compositeKey(namespace, key string) string {
	return namespace + ":" + key
}

// Set adds or updates a value in the cache under a namespace
func (c *NamespaceLRU[V]) Set(namespace, key string, value V) {
	if c.capacity <= 0 {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	ck := compositeKey(namespace, key)
	if element, exists := c.items[ck]; exists {
		c.queue.MoveToFront(element)
		element.Value.(*entry[V]).value = value
		return
	}

	c.items[ck] = c.queue.PushFront(&entry[V]{
		namespace: namespace,
		key:       key,
		value:     value,
	})

	for c.queue.Len() > c.capacity {
		c.evict()
	}
}

// Get retrieves a value by namespace and key and marks it most recently used
func (c *NamespaceLRU[V]) Get(namespace, key string) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	element, exists := c.items[compositeKey(namespace, key)]
	if !exists {
		var zero V
		return zero, false
	}

	c.queue.MoveToFront(element)
	return element.Value.(*entry[V]).value, true
}

// Size returns the current number of items in the cache
func (c *NamespaceLRU[V]) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.queue.Len()
}

// evict removes the least recently used item. Callers hold the mutex.
func (c *NamespaceLRU[V]) evict() {
	element := c.queue.Back()
	if element == nil {
		return
	}

	c.queue.Remove(element)
	e := element.Value.(*entry[V])
	delete(c.items, compositeKey(e.namespace, e.key))
}
