package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

const (
	defaultLockTTL   = 15 * time.Second
	lockRetryInitial = 10 * time.Millisecond
	lockRetryMax     = 200 * time.Millisecond
)

// Locker is a Redis SET NX lock shared by every replica.
type Locker struct {
	client *redis.Client
	script *redis.Script
	ttl    time.Duration
	log    *zap.Logger
}

func NewLocker(client *redis.Client, log *zap.Logger) *Locker {
	if client == nil {
		return nil
	}
	return &Locker{
		client: client,
		script: redis.NewScript(lockReleaseScript),
		ttl:    defaultLockTTL,
		log:    log,
	}
}

func (l *Locker) Backend() string { return "redis" }

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", false, errors.New("lock client not configured")
	}
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}
	if ttl <= 0 {
		return "", false, errors.New("lock ttl must be positive")
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *Locker) Release(ctx context.Context, key, token string) error {
	if l == nil || l.client == nil {
		return nil
	}
	if key == "" || token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{key}, token).Err()
}

// Lock polls TryLock with capped backoff until it succeeds or ctx is done.
// The lease expires after the lock ttl even if release never runs.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	backoff := lockRetryInitial
	for {
		token, ok, err := l.TryLock(ctx, key, l.ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := l.Release(releaseCtx, key, token); err != nil {
					l.log.Warn("release draw lock failed", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff = min(backoff*2, lockRetryMax)
	}
}
