package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"healthsync/internal/utils/fingerprint"
)

// Registrar is the device registry used by the HTTP layer and the request tracker.
type Registrar interface {
	Register(ctx context.Context, deviceID, token, ownerID string) (*Device, error)
	TokenFor(ctx context.Context, deviceID string) (string, error)
	Get(ctx context.Context, deviceID string) (*Device, error)
}

// Service maps device ids to their current push token.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new device registry service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "device_service"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Register upserts the device. Re-registering replaces the token and bumps
// updated_at; created_at stays from the first call.
func (s *Service) Register(ctx context.Context, deviceID, token, ownerID string) (*Device, error) {
	deviceID = strings.TrimSpace(deviceID)
	token = strings.TrimSpace(token)
	if deviceID == "" || token == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	d, err := s.repo.Upsert(ctx, Device{
		ID:        deviceID,
		Token:     token,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error("failed to register device", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("register device: %w", err)
	}

	s.log.Info("device registered",
		"device_id", deviceID,
		"owner_id", ownerID,
		"token", fingerprint.Of(token),
	)

	return d, nil
}

// TokenFor returns the current push token or ErrNotRegistered.
func (s *Service) TokenFor(ctx context.Context, deviceID string) (string, error) {
	d, err := s.Get(ctx, deviceID)
	if err != nil {
		return "", err
	}
	if d.Token == "" {
		return "", ErrNotRegistered
	}
	return d.Token, nil
}

// Get returns the registration record.
func (s *Service) Get(ctx context.Context, deviceID string) (*Device, error) {
	d, err := s.repo.Get(ctx, deviceID)
	if err != nil {
		if errors.Is(err, ErrNotRegistered) {
			return nil, ErrNotRegistered
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}
