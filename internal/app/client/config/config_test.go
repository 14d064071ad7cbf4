package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.IsProd())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "https://health.example.com")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://health.example.com", cfg.ServerAddress)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsProd())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "0s")

	_, err := Load(viper.New())
	assert.ErrorContains(t, err, "request_timeout")
}

func TestLoad_ConfigValues(t *testing.T) {
	v := viper.New()
	v.Set("SERVER_ADDRESS", "10.0.0.5:9000")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5:9000", cfg.ServerAddress)
}
