package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit builds a redis-backed per-caller rate limiter. The rate uses the
// limiter format, e.g. "60-M" for sixty requests per minute. Requests are
// keyed by the sharer identity header when present, falling back to client IP.
func RateLimit(client *redis.Client, rate string) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	store, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "sharing_ratelimit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	instance := limiter.New(store, parsed)
	return ginlimiter.NewMiddleware(instance, ginlimiter.WithKeyGetter(func(c *gin.Context) string {
		if sharer := c.GetHeader(SharerHeader); sharer != "" {
			return sharer
		}
		return c.ClientIP()
	})), nil
}
