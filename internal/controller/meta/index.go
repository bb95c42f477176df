package meta

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/roster-backend/internal/server/svr"
)

func RegisterIndex(r *svr.HTTP) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Roster Backend",
			"endpoints": []string{
				"POST /save",
				"GET /get?id=",
				"POST /saveCharacterData",
				"POST /getCharacterData",
			},
		})
	})
}
