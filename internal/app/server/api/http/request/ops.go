package request

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "data-request-create",
		Method:        http.MethodPost,
		Path:          "/api/v1/health/data/request",
		Summary:       "Запросить данные у устройства",
		Description:   "Создает запрос и отправляет устройству push-уведомление. Ошибка доставки не отменяет запрос.",
		Tags:          []string{"data"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "data-request-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/health/data/request/{request_id}",
		Summary:     "Статус запроса данных",
		Tags:        []string{"data"},
		Middlewares: h.middleware,
	}
}
