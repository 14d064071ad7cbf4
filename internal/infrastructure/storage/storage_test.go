package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/config"
	"healthsync/internal/domain/device"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = config.StorageMemory

	s, err := Open(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Devices.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, device.ErrNotRegistered)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpen_SQLitePing(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = config.StorageSQLite
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "healthsync.db")

	s, err := Open(context.Background(), cfg, slog.Default())
	require.NoError(t, err)

	assert.NoError(t, s.Ping(context.Background()))

	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = "cassandra"

	_, err := Open(context.Background(), cfg, slog.Default())
	assert.Error(t, err)
}
