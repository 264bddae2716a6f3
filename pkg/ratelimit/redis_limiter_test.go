package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisLimiter(t *testing.T, config *Config) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLimiter(client, config), mr
}

func TestRedisLimiterAllowsWithinWindow(t *testing.T) {
	config := DefaultConfig()
	config.Limits[CategoryDefault] = Limit{Requests: 3, Window: time.Minute}
	limiter, _ := setupRedisLimiter(t, config)

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow("client-1", CategoryDefault)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, retryAfter, err := limiter.Allow("client-1", CategoryDefault)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRedisLimiterIsolatesClients(t *testing.T) {
	config := DefaultConfig()
	config.Limits[CategoryDefault] = Limit{Requests: 1, Window: time.Minute}
	limiter, _ := setupRedisLimiter(t, config)

	allowed, _, err := limiter.Allow("client-a", CategoryDefault)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = limiter.Allow("client-b", CategoryDefault)
	require.NoError(t, err)
	assert.True(t, allowed, "a second client must not inherit the first client's window")
}

func TestRedisLimiterWindowReset(t *testing.T) {
	config := DefaultConfig()
	config.Limits[CategoryDefault] = Limit{Requests: 1, Window: time.Second}
	limiter, mr := setupRedisLimiter(t, config)

	allowed, _, err := limiter.Allow("client-1", CategoryDefault)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = limiter.Allow("client-1", CategoryDefault)
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(2 * time.Second)

	allowed, _, err = limiter.Allow("client-1", CategoryDefault)
	require.NoError(t, err)
	assert.True(t, allowed, "window should reset after expiry")
}

func TestRedisLimiterDisabled(t *testing.T) {
	config := DefaultConfig()
	config.Enabled = false
	config.Limits[CategoryDefault] = Limit{Requests: 1, Window: time.Minute}
	limiter, _ := setupRedisLimiter(t, config)

	for i := 0; i < 10; i++ {
		allowed, _, err := limiter.Allow("client-1", CategoryDefault)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestRedisLimiterStats(t *testing.T) {
	config := DefaultConfig()
	config.Limits[CategoryDefault] = Limit{Requests: 1, Window: time.Minute}
	limiter, _ := setupRedisLimiter(t, config)

	limiter.Allow("client-1", CategoryDefault)
	limiter.Allow("client-1", CategoryDefault)

	stats := limiter.Stats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.BlockedRequests)
}

func TestParseAllowReply(t *testing.T) {
	t.Run("Allowed", func(t *testing.T) {
		allowed, retryAfter, err := parseAllowReply([]interface{}{int64(1), int64(0)})
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
	})

	t.Run("Blocked", func(t *testing.T) {
		allowed, retryAfter, err := parseAllowReply([]interface{}{int64(0), int64(1500)})
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 1500*time.Millisecond, retryAfter)
	})

	t.Run("MalformedReplies", func(t *testing.T) {
		replies := []interface{}{
			nil,
			"ok",
			[]interface{}{int64(1)},
			[]interface{}{"1", int64(0)},
			[]interface{}{int64(1), "0"},
		}
		for _, reply := range replies {
			_, _, err := parseAllowReply(reply)
			assert.Error(t, err, "reply %v", reply)
		}
	})
}
