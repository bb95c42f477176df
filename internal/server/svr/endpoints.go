package svr

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/roster-backend/internal/app/appconfig"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
	"exusiai.dev/roster-backend/internal/pkg/middlewares"
)

// HTTP serves plain HTTP endpoints whose errors are shaped {"error": message}.
type HTTP struct {
	fiber.Router

	// WriteLimit rate limits endpoints that store snapshots.
	WriteLimit fiber.Handler
}

// Callable serves callable functions: the request body is enveloped as {"data": ...}, the
// response as {"result": ...}, and errors additionally carry their kind as "code".
type Callable struct {
	fiber.Router

	// WriteLimit rate limits functions that store snapshots.
	WriteLimit fiber.Handler
}

// CreateEndpointGroups shares one write limiter between both transports, so a client
// cannot double its quota by alternating between them.
func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config, limiterStorage fiber.Storage) (*HTTP, *Callable) {
	writeLimit := middlewares.RateLimit(conf.SaveRateLimit, limiterStorage)
	return &HTTP{Router: app, WriteLimit: writeLimit}, &Callable{Router: app, WriteLimit: writeLimit}
}

// Only registers handlers for method at path and answers every other method with 405.
func (r *HTTP) Only(method string, path string, handlers ...fiber.Handler) {
	r.Add(method, path, handlers...)
	if method == fiber.MethodGet {
		r.Head(path, handlers...)
	}
	r.All(path, MethodNotAllowed)
}

// Function registers a callable function at path.
func (r *Callable) Function(path string, handlers ...fiber.Handler) {
	r.Post(path, append([]fiber.Handler{middlewares.Callable()}, handlers...)...)
	r.All(path, middlewares.Callable(), MethodNotAllowed)
}

func MethodNotAllowed(*fiber.Ctx) error {
	return apierr.ErrMethodNotAllowed
}
