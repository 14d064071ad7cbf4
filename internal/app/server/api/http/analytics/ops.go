package analytics

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) showOp() huma.Operation {
	return huma.Operation{
		OperationID: "analytics-show",
		Method:      http.MethodGet,
		Path:        "/api/v1/health/analytics",
		Summary:     "Анализ последних данных",
		Description: "Строит сводки, аномалии и тренды по последней загрузке за выбранную дату.",
		Tags:        []string{"analytics"},
		Middlewares: h.middleware,
	}
}
