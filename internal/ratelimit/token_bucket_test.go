package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/whateat/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), retryAfter(true, 0, 1))
	assert.Equal(t, 500*time.Millisecond, retryAfter(false, 0.5, 1))
	assert.Equal(t, time.Second, retryAfter(false, 0, 1))
}

func TestBucketTTL(t *testing.T) {
	assert.Equal(t, 10*time.Second, bucketTTL(1, 5))
	assert.Equal(t, time.Second, bucketTTL(100, 1))
}

func TestToFloatParsesLuaString(t *testing.T) {
	assert.InDelta(t, 2.75, toFloat("2.75"), 1e-9)
	assert.InDelta(t, 3.0, toFloat(int64(3)), 1e-9)
	assert.Equal(t, int64(1), toInt(int64(1)))
}

func TestDrawLimiterDisabled(t *testing.T) {
	limiter, err := NewDrawLimiter(config.Config{}, nil)
	require.NoError(t, err)
	assert.False(t, limiter.Enabled())

	res, err := limiter.AllowUser(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestDrawLimiterRequiresRedis(t *testing.T) {
	_, err := NewDrawLimiter(config.Config{RateLimit: config.RateLimitConfig{Enabled: true, DrawUserRate: 1, DrawUserBurst: 1}}, nil)
	assert.Error(t, err)
}

func TestNewDrawLockerFallsBackToMemory(t *testing.T) {
	locker := NewDrawLocker(nil, zap.NewNop())
	_, ok := locker.(*KeyedLock)
	assert.True(t, ok)
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisLockerAndBucket(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	locker := NewLocker(client, zap.NewNop())
	unlock, err := locker.Lock(ctx, key)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	_, err = locker.Lock(waitCtx, key)
	cancel()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	unlock()

	bucket := NewTokenBucket(client)
	first, err := bucket.Allow(ctx, key+":bucket", 0.1, 1)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	second, err := bucket.Allow(ctx, key+":bucket", 0.1, 1)
	require.NoError(t, err)
	assert.False(t, second.Allowed)
	assert.Greater(t, second.RetryAfter, time.Duration(0))
}
