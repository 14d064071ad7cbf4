package request

import (
	"healthsync/internal/domain/request"
)

type createInput struct {
	Body createRequest
}

type createRequest struct {
	DeviceID  string   `json:"device_id" minLength:"1" example:"pixel-8-anna" doc:"ID устройства"`
	Metrics   []string `json:"metrics" minItems:"1" example:"[\"steps\",\"heart_rate\"]" doc:"Метрики: steps, heart_rate, sleep, calories, weight, distance"`
	StartDate string   `json:"start_date" example:"2025-12-01" doc:"Начало периода (YYYY-MM-DD)"`
	EndDate   string   `json:"end_date" example:"2025-12-10" doc:"Конец периода (YYYY-MM-DD)"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	RequestID string         `json:"request_id"`
	Status    request.Status `json:"status" example:"sent"`
	Message   string         `json:"message"`
}

type findInput struct {
	RequestID string `path:"request_id" example:"req_20251210_120000_pixel-8-_0a1b2c3d4e5f" doc:"ID запроса"`
}

type findOutput struct {
	Body *request.DataRequest
}
