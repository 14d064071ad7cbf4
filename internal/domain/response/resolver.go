package response

import (
	"context"
	"errors"
	"fmt"
)

// Resolver finds the most recent upload regardless of which request produced it.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// LatestForDevice returns nil, nil when the device has no responses yet.
func (r *Resolver) LatestForDevice(ctx context.Context, deviceID string) (*DataResponse, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("%w: device_id is required", ErrInvalidInput)
	}
	return r.latest(ctx, deviceID)
}

// LatestAny is the single-tenant variant of LatestForDevice.
func (r *Resolver) LatestAny(ctx context.Context) (*DataResponse, error) {
	return r.latest(ctx, "")
}

func (r *Resolver) latest(ctx context.Context, deviceID string) (*DataResponse, error) {
	resp, err := r.repo.Latest(ctx, deviceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve latest response: %w", err)
	}
	return resp, nil
}
