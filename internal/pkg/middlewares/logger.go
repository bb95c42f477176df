package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"exusiai.dev/roster-backend/internal/constant"
	"exusiai.dev/roster-backend/internal/pkg/flog"
)

func Logger(app *fiber.App) {
	Chained(
		app,
		flog.Inject(
			log.Logger,
			flog.IP("ip"),
			flog.Method("method"),
			flog.Path("url"),
			flog.UserAgent("user_agent"),
		),
		flog.RequestID("request_id", constant.RequestIDHeader),
		flog.Access("httpreq"),
	)
}
