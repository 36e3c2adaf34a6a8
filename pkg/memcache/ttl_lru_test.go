package mem

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_Bounded(t *testing.T) {
	c := NewTTLCache[int](3, time.Hour)

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
		assert.LessOrEqual(t, c.Len(), 3)
	}

	_, ok := c.Get("k0")
	assert.False(t, ok, "oldest entry evicted")

	v, ok := c.Get("k9")
	assert.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestTTLCache_LeastRecentlyUsedGoesFirst(t *testing.T) {
	c := NewTTLCache[string](2, time.Hour)
	c.Set("a", "A")
	c.Set("b", "B")

	_, _ = c.Get("a")
	c.Set("c", "C")

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	assert.True(t, okA)
	assert.False(t, okB)
}

func TestTTLCache_Expiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache[int](10, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(30 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(31 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry removed on read")
}

func TestTTLCache_Concurrent(t *testing.T) {
	c := NewTTLCache[int](64, time.Hour)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("%d-%d", g, i%32)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 64)
}
