// Package sqlite: встроенное хранилище для однопользовательских развертываний.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

// timeLayout фиксированной ширины, чтобы строки сортировались как время
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Storage struct {
	db        *sql.DB
	Devices   *DeviceRepository
	Requests  *RequestRepository
	Responses *ResponseRepository
}

func New(path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// один писатель: read-modify-write в Update не конкурирует сам с собой
	db.SetMaxOpenConns(1)

	if err := initTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite tables: %w", err)
	}

	return &Storage{
		db:        db,
		Devices:   NewDeviceRepository(db, log),
		Requests:  NewRequestRepository(db, log),
		Responses: NewResponseRepository(db, log),
	}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS devices (
			device_id TEXT PRIMARY KEY,
			token TEXT NOT NULL,
			owner_id TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS data_requests (
			request_id TEXT PRIMARY KEY,
			device_id TEXT NOT NULL,
			metrics TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL,
			completed_at TEXT,
			error_message TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_data_requests_open ON data_requests(status, created_at);

		CREATE TABLE IF NOT EXISTS data_responses (
			request_id TEXT PRIMARY KEY,
			device_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			device_timestamp TEXT NOT NULL DEFAULT '',
			received_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_data_responses_latest ON data_responses(device_id, received_at DESC, request_id);
	`)
	return err
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}

func isConstraintViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}
