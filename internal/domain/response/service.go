package response

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"healthsync/internal/domain/request"
)

// RequestTracker is the part of the request lifecycle the correlator relies on.
type RequestTracker interface {
	Get(ctx context.Context, id string) (*request.DataRequest, error)
	MarkStatus(ctx context.Context, id string, status request.Status, errMsg string) (*request.DataRequest, error)
}

// Publisher отправляет доменные события во внешнюю шину
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Correlator matches uploads to the requests that solicited them.
type Correlator interface {
	Receive(ctx context.Context, in ReceiveInput) (*DataResponse, error)
	GetResponse(ctx context.Context, requestID string) (*DataResponse, error)
}

type Service struct {
	repo      Repository
	tracker   RequestTracker
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, tracker RequestTracker, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		tracker:   tracker,
		publisher: publisher,
		log:       log.With("component", "response_service"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Receive stores the payload and completes the request. Any failure after the
// request was found marks it failed and comes back as *CorrelationError.
func (s *Service) Receive(ctx context.Context, in ReceiveInput) (*DataResponse, error) {
	if strings.TrimSpace(in.RequestID) == "" || strings.TrimSpace(in.DeviceID) == "" {
		return nil, fmt.Errorf("%w: request_id and device_id are required", ErrInvalidInput)
	}

	req, err := s.tracker.Get(ctx, in.RequestID)
	if err != nil {
		if errors.Is(err, request.ErrNotFound) {
			s.log.Warn("response for unknown request", "request_id", in.RequestID, "device_id", in.DeviceID)
			return nil, ErrUnknownRequest
		}
		return nil, fmt.Errorf("lookup data request: %w", err)
	}

	if req.DeviceID != in.DeviceID {
		s.log.Warn("response device mismatch",
			"request_id", in.RequestID,
			"expected", req.DeviceID,
			"got", in.DeviceID,
		)
		return nil, ErrDeviceMismatch
	}

	if req.Status == request.StatusFailed {
		return nil, fmt.Errorf("%w: request %s already failed", request.ErrIllegalTransition, req.ID)
	}

	resp := DataResponse{
		RequestID:       req.ID,
		DeviceID:        req.DeviceID,
		Payload:         in.Data,
		DeviceTimestamp: in.Timestamp,
		ReceivedAt:      s.now(),
	}

	if err := s.repo.Put(ctx, resp); err != nil {
		return nil, s.fail(ctx, req.ID, fmt.Errorf("store response: %w", err))
	}

	if _, err := s.tracker.MarkStatus(ctx, req.ID, request.StatusCompleted, ""); err != nil {
		return nil, s.fail(ctx, req.ID, fmt.Errorf("complete request: %w", err))
	}

	s.log.Info("data response received",
		"request_id", resp.RequestID,
		"device_id", resp.DeviceID,
		"counts", resp.Payload.Counts(),
	)

	s.publish(ctx, resp)

	return &resp, nil
}

// fail is the compensating step: the request must not stay open after a
// partial correlation.
func (s *Service) fail(ctx context.Context, requestID string, cause error) error {
	bg := context.WithoutCancel(ctx)
	if _, err := s.tracker.MarkStatus(bg, requestID, request.StatusFailed, cause.Error()); err != nil {
		s.log.Error("failed to mark request failed", "request_id", requestID, "cause", cause, "error", err)
	} else {
		s.log.Error("correlation failed", "request_id", requestID, "error", cause)
	}
	return &CorrelationError{RequestID: requestID, Err: cause}
}

func (s *Service) publish(ctx context.Context, resp DataResponse) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, EventReceived, ReceivedEvent{
		RequestID:  resp.RequestID,
		DeviceID:   resp.DeviceID,
		ReceivedAt: resp.ReceivedAt,
		Counts:     resp.Payload.Counts(),
	})
	if err != nil {
		s.log.Warn("failed to publish response event", "request_id", resp.RequestID, "error", err)
	}
}

// GetResponse returns the stored upload for a request.
func (s *Service) GetResponse(ctx context.Context, requestID string) (*DataResponse, error) {
	r, err := s.repo.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get data response: %w", err)
	}
	return r, nil
}
