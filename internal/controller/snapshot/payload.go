package snapshot

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"

	"exusiai.dev/roster-backend/internal/model/types"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
	"exusiai.dev/roster-backend/internal/util/rekuest"
)

// falsy reports whether r would be rejected as "no data" by a JavaScript truthiness check.
func falsy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return r.Num == 0
	case gjson.String:
		return r.Str == ""
	}
	return false
}

// parseSaveBody accepts either {"id"?, "data"} or the bare character payload. An object
// carrying a "data" key is always read as the wrapped form.
func parseSaveBody(ctx *fiber.Ctx, body []byte) (*types.SaveRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apierr.ErrNoData
	}
	if !gjson.ValidBytes(body) {
		return nil, apierr.ErrInvalidReq.Msg("invalid request: body is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	if root.IsObject() {
		if data := root.Get("data"); data.Exists() {
			req := &types.SaveRequest{
				Data: json.RawMessage(data.Raw),
			}
			if id := root.Get("id"); id.Type == gjson.String {
				req.ID = id.Str
			}
			return validSaveRequest(ctx, req)
		}
	}

	return validSaveRequest(ctx, &types.SaveRequest{Data: json.RawMessage(body)})
}

func validSaveRequest(ctx *fiber.Ctx, req *types.SaveRequest) (*types.SaveRequest, error) {
	if len(req.Data) == 0 || falsy(gjson.ParseBytes(req.Data)) {
		return nil, apierr.ErrNoData
	}
	if err := rekuest.ValidStruct(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeData(req *types.SaveRequest) (any, error) {
	var data any
	if err := json.Unmarshal(req.Data, &data); err != nil {
		return nil, apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return data, nil
}
