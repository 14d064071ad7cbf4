package response

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/api/http/apierr"
	"healthsync/internal/domain/response"
)

type Handler struct {
	service    response.Correlator
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service response.Correlator, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.receiveOp(), h.receive)
	huma.Register(api, h.findOp(), h.find)
}

func (h *Handler) receive(ctx context.Context, input *receiveInput) (*receiveOutput, error) {
	_, err := h.service.Receive(ctx, response.ReceiveInput{
		RequestID: input.Body.RequestID,
		DeviceID:  input.Body.DeviceID,
		Timestamp: input.Body.Timestamp,
		Data:      input.Body.Data,
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	return &receiveOutput{
		Body: receiveResponse{
			Status:  "success",
			Message: "Data received successfully",
		},
	}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	resp, err := h.service.GetResponse(ctx, input.RequestID)
	if err != nil {
		return nil, apierr.From(err)
	}
	return &findOutput{Body: resp}, nil
}
