package request

import "errors"

var (
	ErrNotFound          = errors.New("data request not found")
	ErrDuplicateID       = errors.New("data request id already exists")
	ErrIllegalTransition = errors.New("illegal data request status transition")
	ErrInvalidInput      = errors.New("invalid data request input")
)

const (
	transportFailedMessage = "push send failed (request still outstanding)"
	expiredMessage         = "request expired without a response"
)
