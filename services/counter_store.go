package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/reinaldotineo/portfolio_api/model"
)

// CounterStore holds fixed-window counters keyed by namespace and client.
// Consume opens a new window when none is live, rejects without counting
// once the limit is reached, and otherwise counts the request.
type CounterStore interface {
	Consume(ctx context.Context, key string, limit int, window time.Duration) (model.ClientWindowCounter, bool, error)
}

type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*model.ClientWindowCounter
	now      func() time.Time
}

// NewMemoryCounterStore uses time.Now when now is nil.
func NewMemoryCounterStore(now func() time.Time) *MemoryCounterStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryCounterStore{
		counters: make(map[string]*model.ClientWindowCounter),
		now:      now,
	}
}

func (s *MemoryCounterStore) Consume(_ context.Context, key string, limit int, window time.Duration) (model.ClientWindowCounter, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	counter, ok := s.counters[key]
	if !ok || now.After(counter.ResetTime) {
		counter = &model.ClientWindowCounter{Count: 1, ResetTime: now.Add(window)}
		s.counters[key] = counter
		return *counter, true, nil
	}

	if counter.Count >= limit {
		return *counter, false, nil
	}

	counter.Count++
	return *counter, true, nil
}

// Sweep drops windows that have already closed and reports how many.
func (s *MemoryCounterStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, counter := range s.counters {
		if now.After(counter.ResetTime) {
			delete(s.counters, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryCounterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}

// KEYS[1] counter key, ARGV[1] limit, ARGV[2] window in ms.
// Returns {allowed, count, ttl_ms}.
var fixedWindowScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
local window = tonumber(ARGV[2])
if not current then
  redis.call('SET', KEYS[1], 1, 'PX', window)
  return {1, 1, window}
end
local count = tonumber(current)
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], window)
  ttl = window
end
if count >= tonumber(ARGV[1]) then
  return {0, count, ttl}
end
count = redis.call('INCR', KEYS[1])
return {1, count, ttl}
`)

// RedisCounterStore shares windows across instances. The check and the
// increment run in one script so concurrent callers cannot both pass.
type RedisCounterStore struct {
	client redis.Scripter
	prefix string
	now    func() time.Time
}

func NewRedisCounterStore(client redis.Scripter, prefix string) *RedisCounterStore {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisCounterStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisCounterStore) Consume(ctx context.Context, key string, limit int, window time.Duration) (model.ClientWindowCounter, bool, error) {
	res, err := fixedWindowScript.Run(ctx, s.client, []string{s.prefix + key}, limit, window.Milliseconds()).Int64Slice()
	if err != nil {
		return model.ClientWindowCounter{}, false, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return model.ClientWindowCounter{}, false, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	counter := model.ClientWindowCounter{
		Count:     int(res[1]),
		ResetTime: s.now().Add(time.Duration(res[2]) * time.Millisecond),
	}
	return counter, res[0] == 1, nil
}
