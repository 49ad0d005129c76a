// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"sync"
	"time"
)

type lruNode[K comparable, V any] struct {
	key       K
	value     V
	prev      *lruNode[K, V]
	next      *lruNode[K, V]
	expiresAt time.Time
}

// LRU is a thread-safe least recently used cache with optional TTL.
//
// Get, Add and Remove are O(1). A hashmap indexes the nodes of a doubly
// linked list kept in recency order; the list tail is evicted when the
// cache grows past capacity. Expired entries are dropped lazily on access.
type LRU[K comparable, V any] struct {
	mu sync.Mutex

	capacity int

	// ttl of zero means entries never expire.
	ttl time.Duration

	items map[K]*lruNode[K, V]

	// Sentinels: head.next is most recent, tail.prev is least recent.
	head *lruNode[K, V]
	tail *lruNode[K, V]

	hits      int64
	misses    int64
	evictions int64

	now func() time.Time
}

// DefaultCapacity is used when NewLRU is given a non-positive capacity.
const DefaultCapacity = 1024

// NewLRU creates a cache holding at most capacity entries.
// A ttl of zero disables expiry.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*lruNode[K, V], capacity),
		head:     &lruNode[K, V]{},
		tail:     &lruNode[K, V]{},
		now:      time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	if c.expired(node) {
		c.unlink(node)
		c.misses++
		var zero V
		return zero, false
	}

	c.moveToFront(node)
	c.hits++
	return node.value, true
}

// Add inserts or replaces the value for key, evicting the least recently
// used entry when over capacity.
func (c *LRU[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if node, ok := c.items[key]; ok {
		node.value = value
		node.expiresAt = expiresAt
		c.moveToFront(node)
		return
	}

	node := &lruNode[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.pushFront(node)
	c.items[key] = node

	for len(c.items) > c.capacity {
		c.unlink(c.tail.prev)
		c.evictions++
	}
}

// GetOrCompute returns the cached value for key, or calls compute, caches
// its result and returns it. Errors are returned uncached.
//
// compute runs without the lock held, so concurrent misses on the same key
// may compute twice; the last result wins.
func (c *LRU[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	c.Add(key, v)
	return v, nil
}

// Remove deletes key. It reports whether the key was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(node)
	return true
}

// Len returns the number of entries, including expired ones not yet dropped.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Purge removes every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*lruNode[K, V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// Stats returns hit, miss and eviction counts.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Size: len(c.items)}
}

// The helpers below must be called with mu held.

func (c *LRU[K, V]) expired(node *lruNode[K, V]) bool {
	return !node.expiresAt.IsZero() && c.now().After(node.expiresAt)
}

func (c *LRU[K, V]) pushFront(node *lruNode[K, V]) {
	node.prev = c.head
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
}

func (c *LRU[K, V]) moveToFront(node *lruNode[K, V]) {
	node.prev.next = node.next
	node.next.prev = node.prev
	c.pushFront(node)
}

func (c *LRU[K, V]) unlink(node *lruNode[K, V]) {
	if node == c.head || node == c.tail {
		return
	}
	node.prev.next = node.next
	node.next.prev = node.prev
	delete(c.items, node.key)
}
