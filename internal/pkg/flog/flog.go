// Package flog keeps a request scoped zerolog.Logger in the fiber user context.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field is a request attribute recorded on every line of the request logger.
type Field struct {
	Key   string
	Value func(ctx *fiber.Ctx) string
}

func IP(key string) Field {
	return Field{key, func(ctx *fiber.Ctx) string { return ctx.IP() }}
}

func Method(key string) Field {
	return Field{key, func(ctx *fiber.Ctx) string { return ctx.Method() }}
}

func Path(key string) Field {
	return Field{key, func(ctx *fiber.Ctx) string { return ctx.Path() }}
}

func UserAgent(key string) Field {
	return Field{key, func(ctx *fiber.Ctx) string { return ctx.Get(fiber.HeaderUserAgent) }}
}

// Inject derives the request logger from base and stores it in the user context.
// Fields are evaluated once, when the request enters the handler chain.
func Inject(base zerolog.Logger, fields ...Field) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		lc := base.With()
		for _, f := range fields {
			lc = lc.Str(f.Key, f.Value(ctx))
		}
		l := lc.Logger()
		ctx.SetUserContext(l.WithContext(ctx.UserContext()))
		return ctx.Next()
	}
}

// From returns the request logger, or the global logger outside of Inject.
func From(ctx *fiber.Ctx) *zerolog.Logger {
	return log.Ctx(ctx.UserContext())
}

func Warn(ctx *fiber.Ctx) *zerolog.Event {
	return From(ctx).Warn()
}

func Error(ctx *fiber.Ctx) *zerolog.Event {
	return From(ctx).Error()
}

type requestIDKey struct{}

// ID returns the request id assigned by RequestID.
func ID(ctx *fiber.Ctx) (xid.ID, bool) {
	id, ok := ctx.UserContext().Value(requestIDKey{}).(xid.ID)
	return id, ok
}

func withID(ctx context.Context, id xid.ID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID assigns an xid to the request, records it on the request logger under key
// and echoes it in the response header. It must run after Inject.
func RequestID(key, header string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, ok := ID(ctx)
		if !ok {
			id = xid.New()
			ctx.SetUserContext(withID(ctx.UserContext(), id))
		}
		From(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str(key, id.String())
		})
		ctx.Set(header, id.String())
		return ctx.Next()
	}
}

// Access writes one info line per request once the handler chain has returned.
func Access(component string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		From(ctx).Info().
			Str("component", component).
			Int("status", ctx.Response().StatusCode()).
			Int("size", len(ctx.Response().Body())).
			Dur("duration", time.Since(start)).
			Msg("received request")
		return err
	}
}
