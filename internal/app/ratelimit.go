package app

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills the bucket for the elapsed whole intervals, then takes one
// token if available. Returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local intervals = math.floor(math.max(0, now_ms - last_refill) / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals)
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RateLimiter is a Redis backed token bucket shared by every API instance.
type RateLimiter struct {
	rdb            redis.Scripter
	prefix         string
	capacity       int
	refillInterval time.Duration
}

func NewRateLimiter(rdb redis.Scripter, prefix string, capacity int, refillInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:            rdb,
		prefix:         prefix,
		capacity:       capacity,
		refillInterval: refillInterval,
	}
}

type limitResult struct {
	allowed    bool
	remaining  int64
	retryAfter time.Duration
}

func (l *RateLimiter) Allow(ctx context.Context, key string) (limitResult, error) {
	ttl := time.Duration(l.capacity+1) * l.refillInterval
	if ttl < time.Second {
		ttl = time.Second
	}

	vals, err := tokenBucketScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key},
		time.Now().UnixMilli(),
		l.capacity,
		l.refillInterval.Milliseconds(),
		int64(ttl/time.Second),
	).Int64Slice()
	if err != nil {
		return limitResult{}, err
	}

	if len(vals) != 3 {
		return limitResult{}, fmt.Errorf("unexpected rate limit script result: %v", vals)
	}

	return limitResult{
		allowed:    vals[0] == 1,
		remaining:  vals[1],
		retryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// rateLimit limits requests per client IP. Redis failures let the request through.
func (app *Application) rateLimit(limiter *RateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := limiter.Allow(r.Context(), clientIP(r))
		if err != nil {
			app.contextGetLogger(r).Warn("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.capacity))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))

		if !res.allowed {
			secs := int(math.Ceil(res.retryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP relies on middleware.RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
