package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/config"
	"healthsync/internal/domain/device"
	"healthsync/internal/domain/request"
	"healthsync/internal/domain/response"
	"healthsync/internal/infrastructure/storage/memory"
	"healthsync/internal/infrastructure/storage/postgres"
	"healthsync/internal/infrastructure/storage/sqlite"
)

// Storage: три таблицы выбранного бэкенда
type Storage struct {
	Devices   device.Repository
	Requests  request.Repository
	Responses response.Repository

	ping  func(ctx context.Context) error
	close func() error
}

// Open выбирает бэкенд по STORAGE_DRIVER.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	switch cfg.DB.Driver {
	case config.StorageMemory:
		s := memory.New()
		log.Info("using in-memory storage")
		return &Storage{Devices: s.Devices, Requests: s.Requests, Responses: s.Responses, ping: s.Ping, close: s.Close}, nil

	case config.StorageSQLite:
		s, err := sqlite.New(cfg.DB.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		log.Info("using sqlite storage", "path", cfg.DB.SQLitePath)
		return &Storage{Devices: s.Devices, Requests: s.Requests, Responses: s.Responses, ping: s.Ping, close: s.Close}, nil

	case config.StoragePostgres:
		s, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("using postgres storage")
		return &Storage{Devices: s.Devices, Requests: s.Requests, Responses: s.Responses, ping: s.Ping, close: s.Close}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.DB.Driver)
}

// Ping проверяет, что бэкенд отвечает.
func (s *Storage) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
