// Package memory keeps devices, requests and responses in process memory.
// Each table has its own lock.
package memory

import "context"

type Storage struct {
	Devices   *DeviceRepository
	Requests  *RequestRepository
	Responses *ResponseRepository
}

func New() *Storage {
	return &Storage{
		Devices:   NewDeviceRepository(),
		Requests:  NewRequestRepository(),
		Responses: NewResponseRepository(),
	}
}

func (s *Storage) Ping(context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}
