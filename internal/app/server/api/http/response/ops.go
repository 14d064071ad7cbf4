package response

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) receiveOp() huma.Operation {
	return huma.Operation{
		OperationID:   "data-response-receive",
		Method:        http.MethodPost,
		Path:          "/api/v1/health/data/response",
		Summary:       "Принять данные от устройства",
		Description:   "Сохраняет загруженные данные и завершает соответствующий запрос.",
		Tags:          []string{"data"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "data-response-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/health/data/response/{request_id}",
		Summary:     "Получить данные по запросу",
		Tags:        []string{"data"},
		Middlewares: h.middleware,
	}
}
