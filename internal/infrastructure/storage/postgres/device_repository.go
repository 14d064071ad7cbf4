package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/device"
)

type DeviceRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewDeviceRepository(pool *pgxpool.Pool, log *slog.Logger) *DeviceRepository {
	return &DeviceRepository{
		pool: pool,
		log:  log.With("component", "device_repository"),
	}
}

func (r *DeviceRepository) Upsert(ctx context.Context, d device.Device) (*device.Device, error) {
	const query = `
		INSERT INTO devices (device_id, token, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (device_id) DO UPDATE SET
			token = EXCLUDED.token,
			owner_id = EXCLUDED.owner_id,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, d.ID, d.Token, d.OwnerID, d.CreatedAt, d.UpdatedAt).
		Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		r.log.Error("failed to upsert device", "device_id", d.ID, "error", err)
		return nil, fmt.Errorf("upsert device: %w", err)
	}

	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return &d, nil
}

func (r *DeviceRepository) Get(ctx context.Context, deviceID string) (*device.Device, error) {
	const query = `
		SELECT device_id, token, owner_id, created_at, updated_at
		FROM devices
		WHERE device_id = $1`

	var d device.Device
	err := r.pool.QueryRow(ctx, query, deviceID).
		Scan(&d.ID, &d.Token, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, device.ErrNotRegistered
		}
		r.log.Error("failed to get device", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("get device: %w", err)
	}

	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	return &d, nil
}
