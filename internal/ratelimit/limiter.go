package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/logger"
)

const keyPrefix = "wishbox:limiter:"

// Limit is a per-minute request budget for one key
type Limit struct {
	PerMinute int
	Burst     int
}

// Limiter answers whether a keyed caller may proceed. Keys combine an
// operation name with a caller identity (client IP or viewer hash) so limits
// apply per caller, not globally.
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Allow reports whether the keyed caller may proceed now. When denied,
	// retryAfter holds the suggested wait.
	Allow(ctx context.Context, key string, limit Limit) (allowed bool, retryAfter time.Duration, err error)

	// Close releases limiter resources
	Close() error
}

// limiter enforces limits in Redis so sibling processes share one budget, and
// degrades to per-process local limiters while Redis is unreachable.
type limiter struct {
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	clock          adapter.Clock
	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once

	mu    sync.Mutex
	local map[string]*localEntry
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a distributed rate limiter backed by Redis. Redis being
// down at start is tolerated; the limiter runs on local budgets until the
// health monitor sees Redis again.
func NewLimiter(rc adapter.RedisClient, clock adapter.Clock) Limiter {
	l := &limiter{
		redis:       rc,
		distributed: rc.NewRateLimiter(),
		clock:       clock,
		local:       make(map[string]*localEntry),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, rate limits enforced per process", zap.Error(err))
		l.redisAvailable.Store(false)
	} else {
		l.redisAvailable.Store(true)
	}

	go l.monitorRedisHealth()

	return l
}

// NewLocalLimiter creates a limiter that only enforces per-process budgets.
// Used when no Redis address is configured.
func NewLocalLimiter(clock adapter.Clock) Limiter {
	return &limiter{
		clock: clock,
		local: make(map[string]*localEntry),
	}
}

// Allow reports whether the keyed caller may proceed now
func (l *limiter) Allow(ctx context.Context, key string, limit Limit) (bool, time.Duration, error) {
	if l.closed.Load() {
		return false, 0, fmt.Errorf("limiter is closed")
	}
	if limit.PerMinute <= 0 {
		return true, 0, nil
	}

	if l.distributed != nil && l.redisAvailable.Load() {
		allowed, retryAfter, err := l.tryDistributed(ctx, key, limit)
		if err == nil {
			return allowed, retryAfter, nil
		}
		if ctx.Err() != nil {
			return false, 0, ctx.Err()
		}
		l.redisAvailable.Store(false)
		logger.Warn("Redis rate limiter error, falling back to local",
			zap.String("key", key),
			zap.Error(err))
	}

	return l.tryLocal(key, limit), 0, nil
}

func (l *limiter) tryDistributed(ctx context.Context, key string, limit Limit) (bool, time.Duration, error) {
	redisLimit := redis_rate.Limit{
		Rate:   limit.PerMinute,
		Period: time.Minute,
		Burst:  limit.Burst,
	}
	if redisLimit.Burst <= 0 {
		redisLimit.Burst = limit.PerMinute
	}

	res, err := l.distributed.Allow(ctx, keyPrefix+key, redisLimit)
	if err != nil {
		return false, 0, err
	}
	if res.Allowed == 0 {
		return false, res.RetryAfter, nil
	}
	return true, 0, nil
}

// tryLocal consults this process's limiter for the key, creating it on first
// sight. Idle entries are pruned opportunistically to bound the map.
func (l *limiter) tryLocal(key string, limit Limit) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.local[key]
	if !ok {
		burst := limit.Burst
		if burst <= 0 {
			burst = limit.PerMinute
		}
		entry = &localEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(limit.PerMinute)/60), burst),
		}
		l.local[key] = entry

		if len(l.local) > 10000 {
			l.pruneLocked(now)
		}
	}
	entry.lastSeen = now

	return entry.limiter.Allow()
}

// pruneLocked drops entries idle for over an hour. Callers hold l.mu.
func (l *limiter) pruneLocked(now time.Time) {
	for key, entry := range l.local {
		if now.Sub(entry.lastSeen) > time.Hour {
			delete(l.local, key)
		}
	}
}

// monitorRedisHealth periodically checks Redis health and updates availability
func (l *limiter) monitorRedisHealth() {
	for {
		if l.closed.Load() {
			return
		}

		<-l.clock.After(10 * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		redisAvailable := err == nil
		wasAvailable := l.redisAvailable.Load()
		l.redisAvailable.Store(redisAvailable)

		if !wasAvailable && redisAvailable {
			logger.Info("Redis connection restored")
		}
	}
}

// Close releases limiter resources
func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		if l.redis != nil {
			err = l.redis.Close()
		}
	})
	return err
}
