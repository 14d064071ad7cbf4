package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/config"
	"healthsync/internal/infrastructure/migration"
)

const uniqueViolation = "23505"

type Storage struct {
	pool      *pgxpool.Pool
	Devices   *DeviceRepository
	Requests  *RequestRepository
	Responses *ResponseRepository
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	mg := migration.NewMigration(cfg, migration.DefaultEngine)
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DB.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return NewWithPool(pool, log), nil
}

func NewWithPool(pool *pgxpool.Pool, log *slog.Logger) *Storage {
	return &Storage{
		pool:      pool,
		Devices:   NewDeviceRepository(pool, log),
		Requests:  NewRequestRepository(pool, log),
		Responses: NewResponseRepository(pool, log),
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
