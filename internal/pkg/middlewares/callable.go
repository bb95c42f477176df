package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/roster-backend/internal/constant"
)

// Callable marks every request of a route group as served by the callable transport.
func Callable() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(constant.ContextKeyCallable, true)
		return c.Next()
	}
}
