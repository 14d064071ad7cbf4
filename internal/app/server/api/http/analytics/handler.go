package analytics

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/api/http/apierr"
	"healthsync/internal/domain/analytics"
	"healthsync/internal/domain/healthdata"
	"healthsync/internal/domain/response"
)

// Resolver находит последнюю загрузку данных
type Resolver interface {
	LatestForDevice(ctx context.Context, deviceID string) (*response.DataResponse, error)
	LatestAny(ctx context.Context) (*response.DataResponse, error)
}

type Handler struct {
	resolver   Resolver
	targetDate string
	now        func() time.Time
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler creates the analytics handler. targetDate pins the default date
// when the query does not name one; empty means today in UTC.
func NewHandler(resolver Resolver, targetDate string, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		resolver:   resolver,
		targetDate: targetDate,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.showOp(), h.show)
}

func (h *Handler) show(ctx context.Context, input *showInput) (*showOutput, error) {
	date := h.resolveDate(input.Date)
	if _, err := time.Parse(healthdata.DateLayout, date); err != nil {
		return nil, huma.Error422UnprocessableEntity("date must be YYYY-MM-DD")
	}

	var (
		latest *response.DataResponse
		err    error
	)
	if input.DeviceID != "" {
		latest, err = h.resolver.LatestForDevice(ctx, input.DeviceID)
	} else {
		latest, err = h.resolver.LatestAny(ctx)
	}
	if err != nil {
		h.log.Error("failed to resolve latest response", "device_id", input.DeviceID, "error", err)
		return nil, apierr.From(err)
	}
	if latest == nil {
		return nil, huma.Error404NotFound("No health data available")
	}

	a := analytics.Analyze(latest.Payload, date)
	h.log.Debug("analysis built",
		"request_id", latest.RequestID,
		"date", date,
		"anomalies", len(a.Anomalies),
	)

	return &showOutput{
		Body: showResponse{
			Date:       date,
			DeviceID:   latest.DeviceID,
			RequestID:  latest.RequestID,
			ReceivedAt: latest.ReceivedAt,
			Analysis:   a,
			Digest:     analytics.RenderForNarration(&a),
		},
	}, nil
}

func (h *Handler) resolveDate(query string) string {
	switch {
	case query != "":
		return query
	case h.targetDate != "":
		return h.targetDate
	default:
		return h.now().Format(healthdata.DateLayout)
	}
}
