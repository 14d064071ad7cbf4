package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/request"
)

const requestColumns = `request_id, device_id, metrics, start_date, end_date, status, created_at, completed_at, error_message`

type RequestRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRequestRepository(pool *pgxpool.Pool, log *slog.Logger) *RequestRepository {
	return &RequestRepository{
		pool: pool,
		log:  log.With("component", "request_repository"),
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.DataRequest) error {
	metrics, err := json.Marshal(req.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	const query = `
		INSERT INTO data_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.pool.Exec(ctx, query,
		req.ID, req.DeviceID, metrics, req.StartDate, req.EndDate,
		string(req.Status), req.CreatedAt, req.CompletedAt, req.ErrorMessage,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return request.ErrDuplicateID
		}
		r.log.Error("failed to create data request", "request_id", req.ID, "error", err)
		return fmt.Errorf("create data request: %w", err)
	}
	return nil
}

func (r *RequestRepository) Get(ctx context.Context, id string) (*request.DataRequest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM data_requests WHERE request_id = $1`, id)

	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrNotFound
		}
		r.log.Error("failed to get data request", "request_id", id, "error", err)
		return nil, fmt.Errorf("get data request: %w", err)
	}
	return req, nil
}

// Update блокирует строку (SELECT ... FOR UPDATE) до коммита.
func (r *RequestRepository) Update(ctx context.Context, id string, fn func(*request.DataRequest) error) (*request.DataRequest, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx, `SELECT `+requestColumns+` FROM data_requests WHERE request_id = $1 FOR UPDATE`, id)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrNotFound
		}
		return nil, fmt.Errorf("load data request: %w", err)
	}

	if err := fn(req); err != nil {
		return nil, err
	}

	const query = `
		UPDATE data_requests
		SET status = $1, completed_at = $2, error_message = $3
		WHERE request_id = $4`

	if _, err := tx.Exec(ctx, query, string(req.Status), req.CompletedAt, req.ErrorMessage, id); err != nil {
		r.log.Error("failed to update data request", "request_id", id, "error", err)
		return nil, fmt.Errorf("update data request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) ListOpen(ctx context.Context, createdBefore time.Time) ([]request.DataRequest, error) {
	const query = `
		SELECT ` + requestColumns + `
		FROM data_requests
		WHERE status IN ('pending', 'sent') AND created_at < $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, createdBefore)
	if err != nil {
		r.log.Error("failed to list open data requests", "error", err)
		return nil, fmt.Errorf("list open data requests: %w", err)
	}
	defer rows.Close()

	var out []request.DataRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func scanRequest(row pgx.Row) (*request.DataRequest, error) {
	var (
		req     request.DataRequest
		metrics []byte
		status  string
	)

	err := row.Scan(&req.ID, &req.DeviceID, &metrics, &req.StartDate, &req.EndDate,
		&status, &req.CreatedAt, &req.CompletedAt, &req.ErrorMessage)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(metrics, &req.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	req.Status = request.Status(status)
	req.CreatedAt = req.CreatedAt.UTC()
	if req.CompletedAt != nil {
		t := req.CompletedAt.UTC()
		req.CompletedAt = &t
	}
	return &req, nil
}
