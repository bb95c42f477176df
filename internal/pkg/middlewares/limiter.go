package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"exusiai.dev/roster-backend/internal/pkg/apierr"
)

// RateLimit allows perMinute requests per client IP and minute. A value of zero or less disables
// the limit. A nil storage keeps the counters in process memory.
func RateLimit(perMinute int, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return perMinute <= 0
		},
		Max:        perMinute,
		Expiration: time.Minute,
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			// the limiter has already set Retry-After
			if retryAfter, err := strconv.Atoi(c.GetRespHeader(fiber.HeaderRetryAfter)); err == nil {
				return apierr.ErrTooManyRequests.WithExtras(apierr.Extras{"retryAfter": retryAfter})
			}
			return apierr.ErrTooManyRequests
		},
	})
}
