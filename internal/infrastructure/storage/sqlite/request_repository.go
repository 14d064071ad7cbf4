package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"healthsync/internal/domain/request"
)

const requestColumns = `request_id, device_id, metrics, start_date, end_date, status, created_at, completed_at, error_message`

type RequestRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRequestRepository(db *sql.DB, log *slog.Logger) *RequestRepository {
	return &RequestRepository{
		db:  db,
		log: log.With("component", "sqlite_request_repository"),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *RequestRepository) Create(ctx context.Context, req *request.DataRequest) error {
	metrics, err := json.Marshal(req.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO data_requests (`+requestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.DeviceID, string(metrics), req.StartDate, req.EndDate,
		string(req.Status), formatTime(req.CreatedAt), nullableTime(req.CompletedAt), req.ErrorMessage,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return request.ErrDuplicateID
		}
		r.log.Error("failed to create data request", "request_id", req.ID, "error", err)
		return fmt.Errorf("create data request: %w", err)
	}
	return nil
}

func (r *RequestRepository) Get(ctx context.Context, id string) (*request.DataRequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM data_requests WHERE request_id = ?`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, request.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to get data request", "request_id", id, "error", err)
		return nil, fmt.Errorf("get data request: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) Update(ctx context.Context, id string, fn func(*request.DataRequest) error) (*request.DataRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM data_requests WHERE request_id = ?`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, request.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load data request: %w", err)
	}

	if err := fn(req); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE data_requests
		SET status = ?, completed_at = ?, error_message = ?
		WHERE request_id = ?`,
		string(req.Status), nullableTime(req.CompletedAt), req.ErrorMessage, id,
	)
	if err != nil {
		r.log.Error("failed to update data request", "request_id", id, "error", err)
		return nil, fmt.Errorf("update data request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return req, nil
}

func (r *RequestRepository) ListOpen(ctx context.Context, createdBefore time.Time) ([]request.DataRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM data_requests
		WHERE status IN (?, ?) AND created_at < ?
		ORDER BY created_at`,
		string(request.StatusPending), string(request.StatusSent), formatTime(createdBefore),
	)
	if err != nil {
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

func scanRequest(row rowScanner) (*request.DataRequest, error) {
	var (
		req         request.DataRequest
		metrics     string
		status      string
		createdAt   string
		completedAt sql.NullString
	)

	err := row.Scan(&req.ID, &req.DeviceID, &metrics, &req.StartDate, &req.EndDate,
		&status, &createdAt, &completedAt, &req.ErrorMessage)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(metrics), &req.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	req.Status = request.Status(status)
	if req.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, err
		}
		req.CompletedAt = &t
	}
	return &req, nil
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}
