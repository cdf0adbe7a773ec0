package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/whateat/internal/config"
	drawdomain "github.com/smallbiznis/whateat/internal/draw/domain"
	"go.uber.org/zap"
)

const keyDrawUser = "draw:rate:user:%s"

// DrawLimiter throttles POST /api/draw per user. It is separate from the
// daily quota: it guards against request floods, not against draws.
type DrawLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

// NewDrawLimiter returns nil when rate limiting is off.
func NewDrawLimiter(cfg config.Config, client *redis.Client) (*DrawLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}
	if client == nil {
		return nil, errors.New("draw rate limit requires REDIS_ADDR")
	}
	if limitCfg.DrawUserRate <= 0 || limitCfg.DrawUserBurst <= 0 {
		return nil, errors.New("draw rate limit rate and burst must be positive")
	}
	return &DrawLimiter{
		bucket: NewTokenBucket(client),
		rate:   limitCfg.DrawUserRate,
		burst:  limitCfg.DrawUserBurst,
	}, nil
}

func (l *DrawLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *DrawLimiter) AllowUser(ctx context.Context, userID string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyDrawUser, strings.TrimSpace(userID)), l.rate, l.burst)
}

// NewDrawLocker picks the Redis lock when a client exists so replicas share
// one lock per user, and the in-process lock otherwise.
func NewDrawLocker(client *redis.Client, log *zap.Logger) drawdomain.Locker {
	if locker := NewLocker(client, log.Named("draw.lock")); locker != nil {
		return locker
	}
	return NewKeyedLock()
}
