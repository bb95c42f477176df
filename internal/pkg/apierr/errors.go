package apierr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kinds are the symbolic error codes exposed to callable clients.
const (
	KindInvalidArgument = "invalid-argument"
	KindNotFound        = "not-found"
	KindInternal        = "internal"

	// KindResourceExhausted is only produced by rate limiting.
	KindResourceExhausted = "resource-exhausted"
)

// Translation keys for the messages below. Translations live in internal/util/i18n.
const (
	TransNoData           = "err.no_data"
	TransNoValidRecords   = "err.no_valid_records"
	TransIDRequired       = "err.id_required"
	TransNotFound         = "err.not_found"
	TransInternal         = "err.internal"
	TransMethodNotAllowed = "err.method_not_allowed"
	TransInvalidRequest   = "err.invalid_request"
	TransTooManyRequests  = "err.too_many_requests"
)

var (
	// ErrNoData is returned when a save request has no body or no data field.
	ErrNoData = New(fiber.StatusBadRequest, KindInvalidArgument, "no data was provided").Trans(TransNoData)

	// ErrNoValidRecords is returned when no character record survived normalization.
	ErrNoValidRecords = New(fiber.StatusBadRequest, KindInvalidArgument, "no valid character data").Trans(TransNoValidRecords)

	// ErrIDRequired is returned when a lookup is attempted without an identifier.
	ErrIDRequired = New(fiber.StatusBadRequest, KindInvalidArgument, "an id parameter is required").Trans(TransIDRequired)

	// ErrInvalidReq is returned when a request is malformed.
	ErrInvalidReq = New(fiber.StatusBadRequest, KindInvalidArgument, "invalid request: some or all request parameters are invalid").Trans(TransInvalidRequest)

	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = New(fiber.StatusNotFound, KindNotFound, "data not found").Trans(TransNotFound)

	// ErrMethodNotAllowed is returned when an endpoint is called with the wrong method.
	ErrMethodNotAllowed = New(fiber.StatusMethodNotAllowed, KindInvalidArgument, "Method Not Allowed").Trans(TransMethodNotAllowed)

	// ErrTooManyRequests is returned when a client saves too frequently.
	ErrTooManyRequests = New(fiber.StatusTooManyRequests, KindResourceExhausted, "too many requests, please retry later").Trans(TransTooManyRequests)

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, KindInternal, "internal server error").Trans(TransInternal)
)

type Extras map[string]interface{}

type Error struct {
	StatusCode int    `example:"400"`
	Kind       string `example:"invalid-argument"`
	Message    string `example:"no valid character data"`

	// TransKey, when set, selects a localized replacement for Message.
	TransKey string
	Extras   *Extras
}

func New(statusCode int, kind string, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		Kind:       kind,
		Message:    message,
	}
}

// Msg returns a copy with a literal message. The translation key is dropped
// since the message no longer matches it.
func (e Error) Msg(format string, parts ...interface{}) *Error {
	e.Message = fmt.Sprintf(format, parts...)
	e.TransKey = ""
	return &e
}

func (e Error) Trans(key string) *Error {
	e.TransKey = key
	return &e
}

func (e Error) WithExtras(extras Extras) *Error {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *Error {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches errors of the same kind and status, so that errors.Is works across copies
// made by Msg or WithExtras. Two errors that both carry a translation key must also agree on it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.TransKey != "" && t.TransKey != "" && e.TransKey != t.TransKey {
		return false
	}
	return e.Kind == t.Kind && e.StatusCode == t.StatusCode
}
