package device

import "errors"

var (
	ErrNotRegistered = errors.New("device not registered")
	ErrInvalidInput  = errors.New("invalid device input")
)
