package middlewares

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "nyumbasmart_backend/internals/helpers"
)

type RateLimitOpts struct {
	Max        int
	Expiration time.Duration
	// nil keeps counters in process memory
	Redis *redis.Client
}

// RateLimiter limits requests per signed-in landlord, or per IP when the
// request carries no identity yet.
func RateLimiter(o RateLimitOpts) fiber.Handler {
	if o.Max <= 0 {
		o.Max = 100
	}
	if o.Expiration <= 0 {
		o.Expiration = time.Minute
	}

	cfg := limiter.Config{
		Max:        o.Max,
		Expiration: o.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id, err := helper.GetUserIDFromToken(c); err == nil {
				return "user:" + id.String()
			}
			return "ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "too many requests, try again later")
		},
	}
	if o.Redis != nil {
		cfg.Storage = NewRedisStorage(o.Redis, "ratelimit:")
	}
	return limiter.New(cfg)
}
