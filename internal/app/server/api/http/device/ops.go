package device

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "devices-register",
		Method:        http.MethodPost,
		Path:          "/api/v1/devices/register",
		Summary:       "Зарегистрировать устройство",
		Description:   "Сохраняет или заменяет push-токен устройства. Повторная регистрация обновляет токен.",
		Tags:          []string{"devices"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "devices-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/devices/{device_id}",
		Summary:     "Получить регистрацию устройства",
		Tags:        []string{"devices"},
		Middlewares: h.middleware,
	}
}
