package snapshot

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/roster-backend/internal/model"
	"exusiai.dev/roster-backend/internal/model/types"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
	"exusiai.dev/roster-backend/internal/pkg/cachectrl"
	"exusiai.dev/roster-backend/internal/server/svr"
	"exusiai.dev/roster-backend/internal/service"
	"exusiai.dev/roster-backend/internal/util/rekuest"
)

type Callable struct {
	fx.In

	SnapshotService *service.Snapshot
}

func RegisterCallable(r *svr.Callable, c Callable) {
	r.Function("/saveCharacterData", r.WriteLimit, cachectrl.NoStore, c.SaveCharacterData)
	r.Function("/getCharacterData", cachectrl.NoStore, c.GetCharacterData)
}

func decodeCallable[T any](ctx *fiber.Ctx, dest *types.CallableRequest[T]) error {
	body := ctx.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return apierr.ErrNoData
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return nil
}

func (c *Callable) SaveCharacterData(ctx *fiber.Ctx) error {
	var req types.CallableRequest[types.SaveRequest]
	if err := decodeCallable(ctx, &req); err != nil {
		return err
	}

	if _, err := validSaveRequest(ctx, &req.Data); err != nil {
		return err
	}

	data, err := decodeData(&req.Data)
	if err != nil {
		return err
	}

	res, err := c.SnapshotService.Save(ctx.UserContext(), req.Data.ID, data)
	if err != nil {
		return err
	}

	return ctx.JSON(types.CallableResponse[types.SaveResponse]{
		Result: types.SaveResponse{ID: res.ID},
	})
}

func (c *Callable) GetCharacterData(ctx *fiber.Ctx) error {
	var req types.CallableRequest[types.GetRequest]
	if err := decodeCallable(ctx, &req); err != nil {
		return err
	}

	if req.Data.ID == "" {
		return apierr.ErrIDRequired
	}
	if err := rekuest.ValidStruct(ctx, &req.Data); err != nil {
		return err
	}

	snapshot, err := c.SnapshotService.Get(ctx.UserContext(), req.Data.ID)
	if err != nil {
		return err
	}

	return ctx.JSON(types.CallableResponse[*model.Snapshot]{
		Result: snapshot,
	})
}
