// Package apierr переводит доменные ошибки в ответы huma.
package apierr

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"healthsync/internal/domain/device"
	"healthsync/internal/domain/request"
	"healthsync/internal/domain/response"
)

// From maps a domain error to an HTTP status error. Unknown errors become 500
// without leaking their text.
func From(err error) error {
	if err == nil {
		return nil
	}

	var corr *response.CorrelationError
	switch {
	case errors.As(err, &corr):
		return huma.Error500InternalServerError("Failed to process data: " + corr.Err.Error())
	case errors.Is(err, device.ErrNotRegistered):
		return huma.Error404NotFound("Device not registered")
	case errors.Is(err, request.ErrNotFound),
		errors.Is(err, response.ErrUnknownRequest):
		return huma.Error404NotFound("Request not found")
	case errors.Is(err, response.ErrNotFound):
		return huma.Error404NotFound("Response not found")
	case errors.Is(err, request.ErrIllegalTransition),
		errors.Is(err, response.ErrDeviceMismatch):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, device.ErrInvalidInput),
		errors.Is(err, request.ErrInvalidInput),
		errors.Is(err, response.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("Internal server error")
	}
}
