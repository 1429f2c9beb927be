package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New[string](4, 0)

	_, ok := c.Get("apt")
	assert.False(t, ok)

	c.Set("apt", "install\nremove")
	v, ok := c.Get("apt")
	assert.True(t, ok)
	assert.Equal(t, "install\nremove", v)

	c.Set("apt", "update")
	v, _ = c.Get("apt")
	assert.Equal(t, "update", v)
	assert.Equal(t, 1, c.Len())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](2, 0, WithShards(1))
	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New[string](8, time.Minute, WithClock(func() time.Time { return now }))

	c.Set("git", "commit")
	_, ok := c.Get("git")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("git")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestStats(t *testing.T) {
	c := New[int](8, 0)
	assert.Zero(t, c.Stats().HitRate())

	c.Set("k", 1)
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	s := c.Stats()
	assert.Equal(t, uint64(2), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.InDelta(t, 2.0/3.0, s.HitRate(), 1e-9)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](64, 0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i*100+j)%32)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 64)
}
