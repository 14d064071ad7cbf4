package memory

import (
	"context"
	"sync"

	"healthsync/internal/domain/device"
)

type DeviceRepository struct {
	mu      sync.RWMutex
	devices map[string]device.Device
}

func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{devices: make(map[string]device.Device)}
}

func (r *DeviceRepository) Upsert(_ context.Context, d device.Device) (*device.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.devices[d.ID]; ok {
		d.CreatedAt = existing.CreatedAt
	}
	r.devices[d.ID] = d

	out := d
	return &out, nil
}

func (r *DeviceRepository) Get(_ context.Context, deviceID string) (*device.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[deviceID]
	if !ok {
		return nil, device.ErrNotRegistered
	}
	return &d, nil
}
