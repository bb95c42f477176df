package cachectrl

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zeebo/xxh3"
)

// OptOut forbids every cache on the way from storing the response. Snapshots can be
// rewritten under the same identifier at any time.
func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}

// LastModified sets the Last-Modified header of the response to t.
func LastModified(ctx *fiber.Ctx, t time.Time) {
	if t.IsZero() {
		return
	}
	ctx.Response().Header.SetLastModified(t)
}

// NoStore is a handler applying OptOut to every response of the route.
func NoStore(ctx *fiber.Ctx) error {
	OptOut(ctx)
	return ctx.Next()
}

// Revalidate is a handler allowing clients to keep the response while requiring them to
// revalidate it on every use, which makes conditional requests against ETag possible.
func Revalidate(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	return ctx.Next()
}

// ETag sets a weak entity tag derived from the xxh3 hash of body and reports whether the
// request's If-None-Match already carries it. When it does the status is set to 304 and
// the caller shall not write a body.
func ETag(ctx *fiber.Ctx, body []byte) (notModified bool) {
	tag := `W/"` + strconv.FormatUint(xxh3.Hash(body), 16) + `"`
	ctx.Set(fiber.HeaderETag, tag)

	for _, candidate := range strings.Split(ctx.Get(fiber.HeaderIfNoneMatch), ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == tag || candidate == "*" || `W/`+candidate == tag {
			ctx.Status(fiber.StatusNotModified)
			return true
		}
	}
	return false
}
