package throttle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiter_ReserveSpacesSlots(t *testing.T) {
	mr, client := newTestRedis(t)

	rate := Rate{Window: time.Second, Limit: 10}
	limiter, err := NewRedisLimiter(client, "", rate)
	require.NoError(t, err)

	now := time.UnixMilli(1_700_000_000_000)
	limiter.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		wait, err := limiter.Reserve(ctx)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(i)*100*time.Millisecond, wait, "reservation %d", i)
	}

	stored, err := mr.Get(DefaultRedisKey)
	require.NoError(t, err)
	assert.Equal(t, "1700000000300", stored)
	assert.True(t, mr.TTL(DefaultRedisKey) > 0)

	// once the clock passes the booked slots no wait is needed
	now = now.Add(time.Second)
	wait, err := limiter.Reserve(ctx)
	require.NoError(t, err)
	assert.Zero(t, wait)
}

func TestRedisLimiter_SharedBetweenInstances(t *testing.T) {
	_, client := newTestRedis(t)

	rate := Rate{Window: 100 * time.Millisecond, Limit: 2}
	a, err := NewRedisLimiter(client, "shared", rate)
	require.NoError(t, err)
	b, err := NewRedisLimiter(client, "shared", rate)
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, a.Wait(context.Background()))
	require.NoError(t, b.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRedisLimiter_WaitHonoursContext(t *testing.T) {
	_, client := newTestRedis(t)

	limiter, err := NewRedisLimiter(client, "slow", Rate{Window: time.Second, Limit: 1})
	require.NoError(t, err)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = limiter.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestRedisLimiter_GateIntegration(t *testing.T) {
	_, client := newTestRedis(t)

	rate := Rate{Window: 100 * time.Millisecond, Limit: 2}
	limiter, err := NewRedisLimiter(client, "gate", rate)
	require.NoError(t, err)

	// Two gates model two processes sharing one registry account
	g1, err := NewGate(rate, WithLimiter(limiter))
	require.NoError(t, err)
	g2, err := NewGate(rate, WithLimiter(limiter))
	require.NoError(t, err)

	var first, second time.Time
	require.NoError(t, g1.Do(context.Background(), func(context.Context) { first = time.Now() }))
	require.NoError(t, g2.Do(context.Background(), func(context.Context) { second = time.Now() }))
	assert.GreaterOrEqual(t, second.Sub(first), 40*time.Millisecond)
}

func TestNewRedisLimiter_Invalid(t *testing.T) {
	_, client := newTestRedis(t)

	_, err := NewRedisLimiter(client, "", Rate{Window: time.Second})
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))

	_, err = NewRedisLimiter(nil, "", Rate{Window: time.Second, Limit: 1})
	assert.True(t, errors.As(err, &cfgErr))
}
