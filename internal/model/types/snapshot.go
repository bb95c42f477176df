package types

import "github.com/goccy/go-json"

// SaveRequest is the wrapped form of a save payload. Data holds the raw character
// payload, which is either a single object or an array of objects. ID is not bounded:
// an identifier that does not exist, however long, is replaced by a fresh one.
type SaveRequest struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

type GetRequest struct {
	ID string `json:"id" validate:"required,max=128"`
}

// CallableRequest is the envelope every callable endpoint receives its argument in.
type CallableRequest[T any] struct {
	Data T `json:"data"`
}

type CallableResponse[T any] struct {
	Result T `json:"result"`
}

type SaveResponse struct {
	ID string `json:"id"`
}
