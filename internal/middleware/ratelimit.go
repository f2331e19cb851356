// Package middleware holds HTTP middleware that is not part of the session
// resolver chain.
package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/talentgrid/talentgrid-be/internal/api/respond"
)

// Fixed-window counter. The key expires with the window, so a burst cannot
// carry over.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter enforces a fixed-window request limit per client IP. A nil
// limiter, a missing client, or a redis error all fail open: rate limiting is
// protection, not a dependency.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
}

// NewRedisLimiter creates a limiter, or nil when no redis address is set.
func NewRedisLimiter(addr string, limit int, window time.Duration) *RedisLimiter {
	if addr == "" {
		return nil
	}
	return &RedisLimiter{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		script: redis.NewScript(rateLimitScript),
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the key is within its window budget.
func (l *RedisLimiter) Allow(key string) bool {
	if l == nil || l.client == nil || key == "" {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key},
		l.window.Milliseconds(), l.limit).Int64()
	if err != nil {
		log.Warn().Err(err).Msg("Rate limiter unavailable, failing open")
		return true
	}
	return allowed == 1
}

// Handler wraps next with the per-IP limit.
func (l *RedisLimiter) Handler(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !l.Allow(host) {
			respond.Error(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
