package cache

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(capacity int, ttl time.Duration) (*LRUCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	return NewLRUCache(capacity, ttl, WithClock(clock.Now)), clock
}

func TestLRUCache(t *testing.T) {
	tests := []struct {
		name    string
		actions func(t *testing.T, c *LRUCache, clock *fakeClock)
	}{
		{
			name: "set and get within ttl",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order:1", []byte("1"))
				clock.Advance(59 * time.Second)

				v, ok := c.Get("order:1")
				require.True(t, ok)
				assert.Equal(t, "1", string(v))
			},
		},
		{
			name: "entry expires exactly at ttl",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order:1", []byte("1"))
				clock.Advance(time.Minute)

				_, ok := c.Get("order:1")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Size())
			},
		},
		{
			name: "overwrite resets ttl",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order:1", []byte("1"))
				clock.Advance(40 * time.Second)
				c.Set("order:1", []byte("2"))
				clock.Advance(40 * time.Second)

				v, ok := c.Get("order:1")
				require.True(t, ok)
				assert.Equal(t, "2", string(v))
				assert.Equal(t, 1, c.Size())
			},
		},
		{
			name: "least recently read is evicted",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order:1", []byte("1"))
				c.Set("order:2", []byte("2"))
				c.Get("order:1")
				c.Set("order:3", []byte("3"))

				_, ok := c.Get("order:2")
				assert.False(t, ok)
				_, ok = c.Get("order:1")
				assert.True(t, ok)
				_, ok = c.Get("order:3")
				assert.True(t, ok)
				assert.Equal(t, 1, c.Evictions())
			},
		},
		{
			name: "delete invalidates entry",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order:1", []byte("1"))
				c.Set("order:2", []byte("2"))
				c.Delete("order:1")
				c.Delete("order:404")

				_, ok := c.Get("order:1")
				assert.False(t, ok)
				assert.Equal(t, 1, c.Size())
				assert.Equal(t, 0, c.Evictions())
			},
		},
		{
			name: "purge removes only expired entries",
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order:1", []byte("1"))
				clock.Advance(30 * time.Second)
				c.Set("order:2", []byte("2"))
				clock.Advance(30 * time.Second)

				assert.Equal(t, 1, c.purgeExpired())
				assert.Equal(t, 1, c.Size())
				_, ok := c.Get("order:2")
				assert.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, clock := newTestCache(2, time.Minute)
			tt.actions(t, c, clock)
		})
	}
}

func TestLRUCache_Janitor(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := NewLRUCache(10, time.Minute, WithClock(clock.Now), WithJanitorInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.Start(ctx))

	c.Set("order:1", []byte("1"))
	clock.Advance(2 * time.Minute)

	assert.Eventually(t, func() bool { return c.Size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestLRUCache_Concurrent(t *testing.T) {
	c := NewLRUCache(50, time.Minute)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 200 {
				key := "order:" + strconv.Itoa((i*200+j)%100)
				c.Set(key, []byte(key))
				c.Get(key)
				if j%10 == 0 {
					c.Delete(key)
				}
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Size(), 50)
}
