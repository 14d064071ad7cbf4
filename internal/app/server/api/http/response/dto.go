package response

import (
	"healthsync/internal/domain/healthdata"
	"healthsync/internal/domain/response"
)

type receiveInput struct {
	Body receiveRequest
}

type receiveRequest struct {
	RequestID string              `json:"request_id" minLength:"1" doc:"ID запроса, на который отвечает устройство"`
	DeviceID  string              `json:"device_id" minLength:"1" doc:"ID устройства"`
	Timestamp string              `json:"timestamp" example:"2025-12-10T12:00:05Z" doc:"Время на устройстве (ISO 8601)"`
	Data      healthdata.Snapshot `json:"data" doc:"Собранные данные по метрикам"`
}

type receiveOutput struct {
	Body receiveResponse
}

type receiveResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Data received successfully"`
}

type findInput struct {
	RequestID string `path:"request_id" doc:"ID запроса"`
}

type findOutput struct {
	Body *response.DataResponse
}
