package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const serviceName = "healthsync"

// Pinger проверяет, что хранилище отвечает
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	store      Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler: store может быть nil, тогда проверяется только сам процесс.
func NewHandler(store Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		store:      store,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	storage := storageSkipped
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.log.Error("storage ping failed", "error", err)
			return nil, huma.Error503ServiceUnavailable("Storage unavailable")
		}
		storage = storageOK
	}

	return &Output{
		Body: Response{
			Status:  "healthy",
			Service: serviceName,
			Storage: storage,
		},
	}, nil
}
