package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/device"
	"healthsync/internal/domain/healthdata"
)

const maxIDAttempts = 3

// TokenSource отдает текущий push-токен устройства
type TokenSource interface {
	TokenFor(ctx context.Context, deviceID string) (string, error)
}

// Notifier is the push transport boundary. It must not panic; any delivery
// problem, including a revoked token, is reported as false.
type Notifier interface {
	Send(ctx context.Context, token string, n Notification) bool
}

// Tracker owns the lifecycle of data requests.
type Tracker interface {
	Create(ctx context.Context, in CreateInput) (*DataRequest, error)
	Get(ctx context.Context, id string) (*DataRequest, error)
	MarkStatus(ctx context.Context, id string, status Status, errMsg string) (*DataRequest, error)
	ExpireStale(ctx context.Context, ttl time.Duration) (int, error)
}

// Service implements Tracker
type Service struct {
	repo        Repository
	tokens      TokenSource
	notifier    Notifier
	log         *slog.Logger
	pushTimeout time.Duration
	now         func() time.Time
	newID       func(deviceID string, at time.Time) string
}

// NewService creates a new data request tracker
func NewService(repo Repository, tokens TokenSource, notifier Notifier, pushTimeout time.Duration, log *slog.Logger) *Service {
	if pushTimeout <= 0 {
		pushTimeout = 10 * time.Second
	}
	return &Service{
		repo:        repo,
		tokens:      tokens,
		notifier:    notifier,
		log:         log.With("component", "request_service"),
		pushTimeout: pushTimeout,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       NewID,
	}
}

// NewID builds req_<yyyymmdd_hhmmss>_<device prefix>_<random hex>.
func NewID(deviceID string, at time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	prefix := devicePrefix(deviceID)
	if prefix == "" {
		return fmt.Sprintf("req_%s_%s", at.UTC().Format("20060102_150405"), random)
	}
	return fmt.Sprintf("req_%s_%s_%s", at.UTC().Format("20060102_150405"), prefix, random)
}

func devicePrefix(deviceID string) string {
	var b strings.Builder
	for _, r := range deviceID {
		if b.Len() == 8 {
			break
		}
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Create stores a pending request, dispatches it and advances it to sent.
// A failed dispatch only annotates the request: the device may still answer.
func (s *Service) Create(ctx context.Context, in CreateInput) (*DataRequest, error) {
	metrics, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.TokenFor(ctx, in.DeviceID)
	if err != nil {
		if errors.Is(err, device.ErrNotRegistered) {
			s.log.Warn("device token not found", "device_id", in.DeviceID)
			return nil, device.ErrNotRegistered
		}
		return nil, fmt.Errorf("lookup device token: %w", err)
	}

	req, err := s.insertPending(ctx, in, metrics)
	if err != nil {
		return nil, err
	}

	// Dispatch and the pending->sent step must finish even if the caller goes away.
	bg := context.WithoutCancel(ctx)
	sendCtx, cancel := context.WithTimeout(bg, s.pushTimeout)
	delivered := s.notifier.Send(sendCtx, token, Notification{
		RequestID: req.ID,
		Metrics:   req.Metrics,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	cancel()

	updated, err := s.repo.Update(bg, req.ID, func(r *DataRequest) error {
		if r.Status == StatusPending {
			r.Status = StatusSent
		}
		if !delivered && !r.Status.Terminal() {
			r.ErrorMessage = transportFailedMessage
		}
		return nil
	})
	if err != nil {
		s.log.Error("failed to advance data request", "request_id", req.ID, "error", err)
		return nil, fmt.Errorf("advance data request: %w", err)
	}

	if delivered {
		s.log.Info("data request created and sent", "request_id", req.ID, "device_id", req.DeviceID)
	} else {
		s.log.Warn("push send failed but request created", "request_id", req.ID, "device_id", req.DeviceID)
	}

	return updated, nil
}

func (s *Service) validate(in CreateInput) ([]MetricKind, error) {
	if strings.TrimSpace(in.DeviceID) == "" {
		return nil, fmt.Errorf("%w: device_id is required", ErrInvalidInput)
	}

	metrics, err := ParseMetrics(in.Metrics)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(healthdata.DateLayout, in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	end, err := time.Parse(healthdata.DateLayout, in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	}

	return metrics, nil
}

func (s *Service) insertPending(ctx context.Context, in CreateInput, metrics []MetricKind) (*DataRequest, error) {
	now := s.now()
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		req := &DataRequest{
			ID:        s.newID(in.DeviceID, now),
			DeviceID:  in.DeviceID,
			Metrics:   metrics,
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
			Status:    StatusPending,
			CreatedAt: now,
		}

		err := s.repo.Create(ctx, req)
		if err == nil {
			return req, nil
		}
		if !errors.Is(err, ErrDuplicateID) {
			s.log.Error("failed to store data request", "device_id", in.DeviceID, "error", err)
			return nil, fmt.Errorf("create data request: %w", err)
		}
		s.log.Warn("request id collision, regenerating", "request_id", req.ID)
	}
	return nil, fmt.Errorf("create data request: %w", ErrDuplicateID)
}

// Get returns a specific data request by ID
func (s *Service) Get(ctx context.Context, id string) (*DataRequest, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get data request: %w", err)
	}
	return r, nil
}

// MarkStatus is the only way to move a request into a terminal state.
func (s *Service) MarkStatus(ctx context.Context, id string, status Status, errMsg string) (*DataRequest, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var from Status
	updated, err := s.repo.Update(ctx, id, func(r *DataRequest) error {
		from = r.Status
		if !CanTransition(r.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.Status, status)
		}
		r.Status = status
		if status == StatusCompleted {
			t := s.now()
			r.CompletedAt = &t
		}
		if errMsg != "" {
			r.ErrorMessage = errMsg
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrIllegalTransition) {
			return nil, err
		}
		s.log.Error("failed to update data request status", "request_id", id, "status", status, "error", err)
		return nil, fmt.Errorf("update data request status: %w", err)
	}

	s.log.Info("data request status updated", "request_id", id, "from", from, "to", status)
	return updated, nil
}

// ExpireStale fails every open request created more than ttl ago.
func (s *Service) ExpireStale(ctx context.Context, ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}

	open, err := s.repo.ListOpen(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("list open data requests: %w", err)
	}

	expired := 0
	for _, r := range open {
		_, err := s.MarkStatus(ctx, r.ID, StatusFailed, expiredMessage)
		switch {
		case err == nil:
			expired++
		case errors.Is(err, ErrIllegalTransition), errors.Is(err, ErrNotFound):
			// completed between listing and update
		default:
			return expired, err
		}
	}

	if expired > 0 {
		s.log.Info("expired stale data requests", "count", expired, "ttl", ttl)
	}
	return expired, nil
}
