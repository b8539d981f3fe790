package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/concave-dev/crpt/internal/logging"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the next free start slot.
const DefaultRedisKey = "crpt:throttle:next"

// reserveScript atomically reserves the next start slot. KEYS[1] stores the
// earliest start (unix ms) of the next call. ARGV[1] is now, ARGV[2] the
// interval, both in ms. Returns the ms the caller must wait before starting.
var reserveScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local interval = tonumber(ARGV[2])
local slot = tonumber(redis.call('GET', KEYS[1]) or '0')
if slot < now then
	slot = now
end
redis.call('SET', KEYS[1], tostring(slot + interval), 'PX', tostring(slot - now + 2 * interval))
return slot - now
`)

// RedisLimiter spaces call starts across every process sharing the same Redis
// key. Each Wait reserves the next slot and sleeps until it.
//
// Slots are computed from the callers' clocks, so hosts sharing a key need
// synchronized time.
type RedisLimiter struct {
	client   redis.UniversalClient
	key      string
	interval time.Duration
	now      func() time.Time
}

// NewRedisLimiter creates a limiter spacing starts by rate.MinInterval under key
// (DefaultRedisKey when empty).
func NewRedisLimiter(client redis.UniversalClient, key string, rate Rate) (*RedisLimiter, error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, &ConfigurationError{Field: "redis client", Reason: "must not be nil"}
	}
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisLimiter{
		client:   client,
		key:      key,
		interval: rate.MinInterval(),
		now:      time.Now,
	}, nil
}

// Reserve books the next slot and returns how long to wait for it.
func (l *RedisLimiter) Reserve(ctx context.Context) (time.Duration, error) {
	// PX must be positive even when the interval truncates to zero
	interval := l.interval.Milliseconds()
	if interval < 1 {
		interval = 1
	}

	waitMs, err := reserveScript.Run(ctx, l.client, []string{l.key},
		l.now().UnixMilli(), interval).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to reserve slot in redis: %w", err)
	}
	if waitMs < 0 {
		waitMs = 0
	}
	return time.Duration(waitMs) * time.Millisecond, nil
}

// Wait reserves a slot and sleeps until it, or until ctx ends. A slot
// abandoned by a cancelled caller is not returned; it only delays later callers.
func (l *RedisLimiter) Wait(ctx context.Context) error {
	wait, err := l.Reserve(ctx)
	if err != nil {
		return err
	}
	if wait <= 0 {
		return nil
	}
	logging.Debug("Throttle: waiting %v for shared slot %s", wait, l.key)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
