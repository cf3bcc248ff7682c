package services

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryCounterStore_AllowsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryCounterStore(clock.Now)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		counter, allowed, err := store.Consume(ctx, "contact:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i)
		assert.Equal(t, i, counter.Count)
	}

	counter, allowed, err := store.Consume(ctx, "contact:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 3, counter.Count, "rejected requests are not counted")
}

func TestMemoryCounterStore_WindowResets(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryCounterStore(clock.Now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := store.Consume(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
	}
	_, allowed, _ := store.Consume(ctx, "k", 3, time.Minute)
	assert.False(t, allowed)

	// Still inside the window at exactly the reset instant.
	clock.Advance(time.Minute)
	_, allowed, _ = store.Consume(ctx, "k", 3, time.Minute)
	assert.False(t, allowed)

	clock.Advance(time.Millisecond)
	counter, allowed, err := store.Consume(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, counter.Count)
	assert.Equal(t, clock.Now().Add(time.Minute), counter.ResetTime)
}

func TestMemoryCounterStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryCounterStore(newFakeClock().Now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, _ = store.Consume(ctx, "contact:a", 3, time.Minute)
	}
	_, allowed, _ := store.Consume(ctx, "contact:a", 3, time.Minute)
	assert.False(t, allowed)

	_, allowed, _ = store.Consume(ctx, "contact:b", 3, time.Minute)
	assert.True(t, allowed)
	_, allowed, _ = store.Consume(ctx, "consultation:a", 3, time.Minute)
	assert.True(t, allowed)
}

func TestMemoryCounterStore_ConcurrentConsumeNeverExceedsLimit(t *testing.T) {
	store := NewMemoryCounterStore(newFakeClock().Now)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, allowed, err := store.Consume(ctx, "chat:x", 10, time.Minute)
			if err == nil && allowed {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, granted)
}

func TestMemoryCounterStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryCounterStore(clock.Now)
	ctx := context.Background()

	_, _, _ = store.Consume(ctx, "short", 3, time.Second)
	_, _, _ = store.Consume(ctx, "long", 3, time.Hour)
	require.Equal(t, 2, store.Len())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestRedisCounterStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	prefix := "test:" + strconv.FormatInt(time.Now().UnixNano(), 10) + ":"
	store := NewRedisCounterStore(client, prefix)

	for i := 1; i <= 3; i++ {
		counter, allowed, err := store.Consume(ctx, "contact:1.2.3.4", 3, time.Second)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, i, counter.Count)
	}

	counter, allowed, err := store.Consume(ctx, "contact:1.2.3.4", 3, time.Second)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 3, counter.Count)

	_, allowed, err = store.Consume(ctx, "contact:5.6.7.8", 3, time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)

	time.Sleep(1100 * time.Millisecond)
	counter, allowed, err = store.Consume(ctx, "contact:1.2.3.4", 3, time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, counter.Count)
}
