package limiter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter throttles a keyed action (signup and token requests, keyed by
// client IP). Counters live in redis when a client is configured so the limit
// holds across replicas; without one, per-key token buckets in process memory
// take over. A redis outage degrades to allowing the request rather than
// failing it.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// New creates a Limiter allowing limit events per window per key. client may
// be nil.
func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client:  client,
		limit:   limit,
		window:  window,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the action identified by key may proceed.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.client != nil {
		return l.allowRedis(ctx, key)
	}
	return l.allowLocal(key)
}

func (l *Limiter) allowRedis(ctx context.Context, key string) bool {
	redisKey := "ratelimit:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		slog.Warn("rate limiter falling back to allow", "key", key, "error", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			slog.Warn("rate limiter expire failed", "key", key, "error", err)
		}
	}
	return count <= int64(l.limit)
}

func (l *Limiter) allowLocal(key string) bool {
	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()
	return bucket.Allow()
}
