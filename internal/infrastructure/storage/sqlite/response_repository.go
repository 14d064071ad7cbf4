package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"healthsync/internal/domain/response"
)

type ResponseRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewResponseRepository(db *sql.DB, log *slog.Logger) *ResponseRepository {
	return &ResponseRepository{
		db:  db,
		log: log.With("component", "sqlite_response_repository"),
	}
}

func (r *ResponseRepository) Put(ctx context.Context, resp response.DataResponse) error {
	payload, err := json.Marshal(resp.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO data_responses (request_id, device_id, payload, device_timestamp, received_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(request_id) DO UPDATE SET
			device_id = excluded.device_id,
			payload = excluded.payload,
			device_timestamp = excluded.device_timestamp,
			received_at = excluded.received_at`,
		resp.RequestID, resp.DeviceID, string(payload), resp.DeviceTimestamp, formatTime(resp.ReceivedAt),
	)
	if err != nil {
		r.log.Error("failed to store data response", "request_id", resp.RequestID, "error", err)
		return fmt.Errorf("store data response: %w", err)
	}
	return nil
}

func (r *ResponseRepository) Get(ctx context.Context, requestID string) (*response.DataResponse, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT request_id, device_id, payload, device_timestamp, received_at
		FROM data_responses
		WHERE request_id = ?`, requestID)

	resp, err := scanResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, response.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to get data response", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("get data response: %w", err)
	}
	return resp, nil
}

func (r *ResponseRepository) Latest(ctx context.Context, deviceID string) (*response.DataResponse, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT request_id, device_id, payload, device_timestamp, received_at
		FROM data_responses
		WHERE ? = '' OR device_id = ?
		ORDER BY received_at DESC, request_id ASC
		LIMIT 1`, deviceID, deviceID)

	resp, err := scanResponse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, response.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to resolve latest response", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("latest data response: %w", err)
	}
	return resp, nil
}

func scanResponse(row rowScanner) (*response.DataResponse, error) {
	var (
		resp       response.DataResponse
		payload    string
		receivedAt string
	)

	if err := row.Scan(&resp.RequestID, &resp.DeviceID, &payload, &resp.DeviceTimestamp, &receivedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &resp.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}

	var err error
	if resp.ReceivedAt, err = parseTime(receivedAt); err != nil {
		return nil, err
	}
	return &resp, nil
}
