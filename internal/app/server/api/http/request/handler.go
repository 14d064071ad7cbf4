package request

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/api/http/apierr"
	"healthsync/internal/domain/request"
)

type Handler struct {
	service    request.Tracker
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service request.Tracker, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	r, err := h.service.Create(ctx, request.CreateInput{
		DeviceID:  input.Body.DeviceID,
		Metrics:   input.Body.Metrics,
		StartDate: input.Body.StartDate,
		EndDate:   input.Body.EndDate,
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	message := "Request sent to device"
	if r.ErrorMessage != "" {
		message = "Request created, push delivery failed"
	}

	return &createOutput{
		Body: createResponse{
			RequestID: r.ID,
			Status:    r.Status,
			Message:   message,
		},
	}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	r, err := h.service.Get(ctx, input.RequestID)
	if err != nil {
		return nil, apierr.From(err)
	}
	return &findOutput{Body: r}, nil
}
