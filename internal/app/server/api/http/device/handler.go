package device

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/api/http/apierr"
	"healthsync/internal/domain/device"
	"healthsync/internal/utils/fingerprint"
)

type Handler struct {
	service    device.Registrar
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service device.Registrar, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.getOp(), h.get)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*statusOutput, error) {
	d, err := h.service.Register(ctx, input.Body.DeviceID, input.Body.Token, input.Body.OwnerID)
	if err != nil {
		return nil, apierr.From(err)
	}

	return &statusOutput{
		Body: statusResponse{
			Status:  "success",
			Message: fmt.Sprintf("Device %s registered successfully", d.ID),
		},
	}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*getOutput, error) {
	d, err := h.service.Get(ctx, input.DeviceID)
	if err != nil {
		return nil, apierr.From(err)
	}

	return &getOutput{
		Body: deviceResponse{
			DeviceID:         d.ID,
			OwnerID:          d.OwnerID,
			TokenFingerprint: fingerprint.Of(d.Token),
			CreatedAt:        d.CreatedAt,
			UpdatedAt:        d.UpdatedAt,
		},
	}, nil
}
