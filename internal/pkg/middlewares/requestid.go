package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/roster-backend/internal/constant"
	"exusiai.dev/roster-backend/internal/pkg/flog"
)

func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.ID(c)
		if ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
