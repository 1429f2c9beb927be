// Package cache provides the in-process LRU used to remember tool output
// between lookups.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
)

const defaultShards = 8

// LRU is a sharded, thread-safe least-recently-used cache with optional
// per-entry expiry. Keys are hashed with xxhash to pick a shard.
type LRU[V any] struct {
	shards []*shard[V]
	mask   uint64
	ttl    time.Duration
	now    func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

type shard[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	head     *entry[V]
	tail     *entry[V]
	capacity int
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

// Option configures an LRU.
type Option func(*options)

type options struct {
	shards int
	now    func() time.Time
}

// WithShards sets the shard count, rounded up to a power of two.
func WithShards(n int) Option {
	return func(o *options) { o.shards = n }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates an LRU holding about capacity entries in total. A zero ttl
// keeps entries until they are evicted.
func New[V any](capacity int, ttl time.Duration, opts ...Option) *LRU[V] {
	o := options{shards: defaultShards, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if capacity < 1 {
		capacity = 1
	}

	count := 1
	for count < o.shards && count < capacity {
		count <<= 1
	}
	perShard := (capacity + count - 1) / count

	c := &LRU[V]{
		shards: make([]*shard[V], count),
		mask:   uint64(count - 1),
		ttl:    ttl,
		now:    o.now,
	}
	for i := range c.shards {
		c.shards[i] = &shard[V]{
			items:    make(map[string]*entry[V], perShard),
			capacity: perShard,
		}
	}
	return c
}

func (c *LRU[V]) shardFor(key string) *shard[V] {
	return c.shards[xxhash.Sum64String(key)&c.mask]
}

// Get returns the value for key, refreshing its recency.
func (c *LRU[V]) Get(key string) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if ok && !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		s.remove(e)
		ok = false
	}
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.moveToFront(e)
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key, evicting the least recently used entry of the
// shard when it is full.
func (c *LRU[V]) Set(key string, value V) {
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		s.moveToFront(e)
		return
	}
	if len(s.items) >= s.capacity && s.tail != nil {
		s.remove(s.tail)
	}
	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	s.pushFront(e)
	s.items[key] = e
}

// Len returns the number of stored entries, expired ones included until
// they are touched.
func (c *LRU[V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.items)
		s.mu.Unlock()
	}
	return total
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// HitRate returns hits over lookups, or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns the current counters.
func (c *LRU[V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.Len()}
}

func (s *shard[V]) pushFront(e *entry[V]) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *shard[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (s *shard[V]) moveToFront(e *entry[V]) {
	if s.head == e {
		return
	}
	s.unlink(e)
	s.pushFront(e)
}

func (s *shard[V]) remove(e *entry[V]) {
	s.unlink(e)
	delete(s.items, e.key)
}
