package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter shared across instances through
// redis. Window state lives in a counter with a TTL; the check-and-increment
// runs as a Lua script so concurrent instances cannot over-admit.
type RedisLimiter struct {
	client *redis.Client
	config *Config
	stats  Stats
	ctx    context.Context
}

func NewRedisLimiter(client *redis.Client, config *Config) *RedisLimiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &RedisLimiter{
		client: client,
		config: config,
		ctx:    context.Background(),
	}
}

var allowScript = redis.NewScript(`
	local key = KEYS[1]
	local max_requests = tonumber(ARGV[1])
	local window_ms = tonumber(ARGV[2])

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('PEXPIRE', key, window_ms)
	end

	if count > max_requests then
		local ttl = redis.call('PTTL', key)
		if ttl < 0 then
			ttl = window_ms
		end
		return {0, ttl}
	end
	return {1, 0}
`)

func (r *RedisLimiter) Allow(clientID, category string) (bool, time.Duration, error) {
	if !r.config.Enabled {
		return true, 0, nil
	}
	atomic.AddInt64(&r.stats.TotalRequests, 1)

	limit := r.config.LimitFor(category)
	key := fmt.Sprintf("%s%s:%s", r.config.RedisKeyPrefix, clientID, category)

	result, err := allowScript.Run(r.ctx, r.client, []string{key},
		limit.Requests, limit.Window.Milliseconds()).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit check failed: %w", err)
	}

	allowed, retryAfter, err := parseAllowReply(result)
	if err != nil {
		return false, 0, err
	}
	if allowed {
		return true, 0, nil
	}

	atomic.AddInt64(&r.stats.BlockedRequests, 1)
	return false, retryAfter, nil
}

// parseAllowReply decodes the {allowed, ttl_ms} pair the script returns.
// Anything other than two integers is treated as a limiter failure, which
// the middleware handles by letting the request through.
func parseAllowReply(result interface{}) (bool, time.Duration, error) {
	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return false, 0, fmt.Errorf("unexpected rate limit script result: %v", result)
	}
	allowed, ok := values[0].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected rate limit script result: %v", result)
	}
	ttlMillis, ok := values[1].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected rate limit script result: %v", result)
	}
	return allowed == 1, time.Duration(ttlMillis) * time.Millisecond, nil
}

func (r *RedisLimiter) LimitFor(category string) Limit {
	return r.config.LimitFor(category)
}

func (r *RedisLimiter) Stats() Stats {
	return Stats{
		TotalRequests:   atomic.LoadInt64(&r.stats.TotalRequests),
		BlockedRequests: atomic.LoadInt64(&r.stats.BlockedRequests),
	}
}
