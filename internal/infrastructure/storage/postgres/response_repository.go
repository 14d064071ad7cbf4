package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/response"
)

const responseColumns = `request_id, device_id, payload, device_timestamp, received_at`

type ResponseRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewResponseRepository(pool *pgxpool.Pool, log *slog.Logger) *ResponseRepository {
	return &ResponseRepository{
		pool: pool,
		log:  log.With("component", "response_repository"),
	}
}

func (r *ResponseRepository) Put(ctx context.Context, resp response.DataResponse) error {
	payload, err := json.Marshal(resp.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	const query = `
		INSERT INTO data_responses (` + responseColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (request_id) DO UPDATE SET
			device_id = EXCLUDED.device_id,
			payload = EXCLUDED.payload,
			device_timestamp = EXCLUDED.device_timestamp,
			received_at = EXCLUDED.received_at`

	_, err = r.pool.Exec(ctx, query, resp.RequestID, resp.DeviceID, payload, resp.DeviceTimestamp, resp.ReceivedAt)
	if err != nil {
		r.log.Error("failed to store data response", "request_id", resp.RequestID, "error", err)
		return fmt.Errorf("store data response: %w", err)
	}
	return nil
}

func (r *ResponseRepository) Get(ctx context.Context, requestID string) (*response.DataResponse, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+responseColumns+` FROM data_responses WHERE request_id = $1`, requestID)

	resp, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, response.ErrNotFound
		}
		r.log.Error("failed to get data response", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("get data response: %w", err)
	}
	return resp, nil
}

func (r *ResponseRepository) Latest(ctx context.Context, deviceID string) (*response.DataResponse, error) {
	const query = `
		SELECT ` + responseColumns + `
		FROM data_responses
		WHERE $1::text = '' OR device_id = $1::text
		ORDER BY received_at DESC, request_id ASC
		LIMIT 1`

	resp, err := scanResponse(r.pool.QueryRow(ctx, query, deviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, response.ErrNotFound
		}
		r.log.Error("failed to resolve latest response", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("latest data response: %w", err)
	}
	return resp, nil
}

func scanResponse(row pgx.Row) (*response.DataResponse, error) {
	var (
		resp    response.DataResponse
		payload []byte
	)

	if err := row.Scan(&resp.RequestID, &resp.DeviceID, &payload, &resp.DeviceTimestamp, &resp.ReceivedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &resp.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	resp.ReceivedAt = resp.ReceivedAt.UTC()
	return &resp, nil
}
