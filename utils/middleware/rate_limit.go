package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/config"
	"github.com/willowgate/school-api/utils/cache"
	"github.com/willowgate/school-api/utils/response"
)

// windowCounter is the slice of the cache the limiter depends on
type windowCounter interface {
	SlidingWindowCount(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter enforces per-route sliding windows keyed by client address
type RateLimiter struct {
	counter windowCounter
}

// NewRateLimiter creates a rate limiter backed by redis. A nil cache
// disables limiting entirely (fail open when redis is unavailable at
// startup).
func NewRateLimiter(redisCache *cache.RedisCache) *RateLimiter {
	if redisCache == nil {
		return &RateLimiter{}
	}
	return &RateLimiter{counter: redisCache}
}

// Limit returns middleware enforcing rule for the named route. A redis
// error never blocks the request: limiting exists to slow abuse, not to
// add an availability dependency for legitimate users.
func (r *RateLimiter) Limit(route string, rule config.RateLimitRule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r.counter == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", route, c.IP())
		count, err := r.counter.SlidingWindowCount(c.Context(), key, rule.Window)
		if err != nil {
			return c.Next()
		}

		if count > int64(rule.Max) {
			c.Set("Retry-After", fmt.Sprintf("%d", int(rule.Window.Seconds())))
			return response.TooManyRequests(c, "")
		}

		return c.Next()
	}
}
