package snapshot

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/roster-backend/internal/model/types"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
	"exusiai.dev/roster-backend/internal/pkg/cachectrl"
	"exusiai.dev/roster-backend/internal/server/svr"
	"exusiai.dev/roster-backend/internal/service"
	"exusiai.dev/roster-backend/internal/util/rekuest"
)

type HTTP struct {
	fx.In

	SnapshotService *service.Snapshot
}

func RegisterHTTP(r *svr.HTTP, c HTTP) {
	r.Only(fiber.MethodPost, "/save", r.WriteLimit, cachectrl.NoStore, c.Save)
	r.Only(fiber.MethodGet, "/get", cachectrl.Revalidate, c.Get)
}

func (c *HTTP) Save(ctx *fiber.Ctx) error {
	req, err := parseSaveBody(ctx, ctx.Body())
	if err != nil {
		return err
	}

	data, err := decodeData(req)
	if err != nil {
		return err
	}

	res, err := c.SnapshotService.Save(ctx.UserContext(), req.ID, data)
	if err != nil {
		return err
	}

	return ctx.JSON(types.SaveResponse{ID: res.ID})
}

func (c *HTTP) Get(ctx *fiber.Ctx) error {
	req := types.GetRequest{ID: ctx.Query("id")}
	if req.ID == "" {
		return apierr.ErrIDRequired
	}
	if err := rekuest.ValidStruct(ctx, &req); err != nil {
		return err
	}

	snapshot, err := c.SnapshotService.Get(ctx.UserContext(), req.ID)
	if err != nil {
		return err
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	cachectrl.LastModified(ctx, snapshot.LastModified())
	if cachectrl.ETag(ctx, body) {
		return nil
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(body)
}
