package response

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("data response not found")
	ErrUnknownRequest = errors.New("unknown data request")
	ErrDeviceMismatch = errors.New("device id does not match the data request")
	ErrInvalidInput   = errors.New("invalid data response input")
)

// CorrelationError означает, что ответ не удалось сохранить или завершить запрос.
// Запрос к этому моменту уже переведен в failed.
type CorrelationError struct {
	RequestID string
	Err       error
}

func (e *CorrelationError) Error() string {
	return fmt.Sprintf("correlate response for %s: %v", e.RequestID, e.Err)
}

func (e *CorrelationError) Unwrap() error {
	return e.Err
}
