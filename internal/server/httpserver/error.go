package httpserver

import (
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"exusiai.dev/roster-backend/internal/constant"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
	"exusiai.dev/roster-backend/internal/pkg/flog"
	"exusiai.dev/roster-backend/internal/util/i18n"
	"exusiai.dev/roster-backend/internal/util/rekuest"
)

func handleCustomError(ctx *fiber.Ctx, e *apierr.Error) error {
	flog.Warn(ctx).
		Err(e).
		Str("kind", e.Kind).
		Msg(e.Message)

	body := fiber.Map{
		"error": i18n.T(rekuest.TranslatorFromCtx(ctx), e.TransKey, e.Message),
	}
	// callable clients switch on the symbolic kind
	if callable, _ := ctx.Locals(constant.ContextKeyCallable).(bool); callable {
		body["code"] = e.Kind
	}

	// Add extra details if needed
	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	// Use custom error handler to return JSON error responses
	var e *apierr.Error
	if errors.As(err, &e) {
		return handleCustomError(ctx, e)
	}

	// Default 500 statuscode
	re := apierr.ErrInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return handleCustomError(ctx, apierr.ErrNotFound.Msg("%s", fe.Message))
		case fiber.StatusMethodNotAllowed:
			return handleCustomError(ctx, apierr.ErrMethodNotAllowed)
		}
		if fe.Code < fiber.StatusInternalServerError {
			return handleCustomError(ctx, apierr.ErrInvalidReq.Msg("%s", fe.Message))
		}
	}

	flog.Error(ctx).
		Stack().
		Err(err).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, re)
}
