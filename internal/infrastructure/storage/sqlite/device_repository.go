package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"healthsync/internal/domain/device"
)

type DeviceRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewDeviceRepository(db *sql.DB, log *slog.Logger) *DeviceRepository {
	return &DeviceRepository{
		db:  db,
		log: log.With("component", "sqlite_device_repository"),
	}
}

func (r *DeviceRepository) Upsert(ctx context.Context, d device.Device) (*device.Device, error) {
	const query = `
		INSERT INTO devices (device_id, token, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(device_id) DO UPDATE SET
			token = excluded.token,
			owner_id = excluded.owner_id,
			updated_at = excluded.updated_at
		RETURNING created_at`

	var createdAt string
	err := r.db.QueryRowContext(ctx, query,
		d.ID, d.Token, d.OwnerID, formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
	).Scan(&createdAt)
	if err != nil {
		r.log.Error("failed to upsert device", "device_id", d.ID, "error", err)
		return nil, fmt.Errorf("upsert device: %w", err)
	}

	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeviceRepository) Get(ctx context.Context, deviceID string) (*device.Device, error) {
	const query = `
		SELECT device_id, token, owner_id, created_at, updated_at
		FROM devices
		WHERE device_id = ?`

	var d device.Device
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, deviceID).
		Scan(&d.ID, &d.Token, &d.OwnerID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, device.ErrNotRegistered
	}
	if err != nil {
		r.log.Error("failed to get device", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("get device: %w", err)
	}

	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}
