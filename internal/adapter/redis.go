package adapter

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the slice of the go-redis client the rate limiter needs.
// Kept narrow so limiter tests can run without a Redis instance.
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient
type RedisClient interface {
	// Ping reports whether Redis is reachable
	Ping(ctx context.Context) *redis.StatusCmd

	// NewRateLimiter builds a sliding-window limiter backed by this connection
	NewRateLimiter() RedisRateLimiter

	Close() error
}

type redisClient struct {
	client *redis.Client
}

// NewRedisClient dials Redis for distributed rate limiting. The connection is
// not verified here; the limiter's startup ping decides whether to use it.
func NewRedisClient(addr, password string, db int) RedisClient {
	return &redisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (r *redisClient) Ping(ctx context.Context) *redis.StatusCmd {
	return r.client.Ping(ctx)
}

func (r *redisClient) NewRateLimiter() RedisRateLimiter {
	return NewRateLimiter(redis_rate.NewLimiter(r.client))
}

func (r *redisClient) Close() error {
	return r.client.Close()
}

// RedisRateLimiter wraps the GCRA check so per-route limits can be asserted
// in tests without Redis
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisRateLimiter=MockRedisRateLimiter
type RedisRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type redisRateLimiter struct {
	limiter *redis_rate.Limiter
}

// NewRateLimiter wraps a redis_rate.Limiter behind the RedisRateLimiter seam
func NewRateLimiter(limiter *redis_rate.Limiter) RedisRateLimiter {
	return &redisRateLimiter{
		limiter: limiter,
	}
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return r.limiter.Allow(ctx, key, limit)
}
