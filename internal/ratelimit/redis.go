package ratelimit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisWindow keeps the sliding window in a Redis sorted set per identity,
// so multiple instances share one view of each client. Scores and members
// are the request timestamps in nanoseconds.
type RedisWindow struct {
	client *redis.Client
	limit  int
	window time.Duration

	now func() time.Time // overridable in tests
}

func NewRedisWindow(client *redis.Client, limit int, window time.Duration) *RedisWindow {
	return &RedisWindow{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow trims entries older than the window, counts what remains and admits
// the request if the count is under the limit. A Redis failure admits the
// request; availability wins over strictness here.
func (r *RedisWindow) Allow(ctx context.Context, identity string) bool {
	key := "ratelimit:" + identity
	now := r.now()
	cutoff := strconv.FormatInt(now.Add(-r.window).UnixNano(), 10)

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", cutoff)
	count := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("rate limit check failed, admitting request", "error", err)
		return true
	}

	if count.Val() >= int64(r.limit) {
		return false
	}

	member := strconv.FormatInt(now.UnixNano(), 10)
	pipe = r.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, key, r.window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("rate limit record failed", "error", err)
	}
	return true
}
