package analytics

import (
	"time"

	"healthsync/internal/domain/analytics"
)

type showInput struct {
	DeviceID string `query:"device_id" doc:"ID устройства; без него берется последняя загрузка любого устройства"`
	Date     string `query:"date" example:"2025-12-10" doc:"Дата анализа (YYYY-MM-DD), по умолчанию сегодня"`
}

type showOutput struct {
	Body showResponse
}

type showResponse struct {
	Date       string             `json:"date" example:"2025-12-10"`
	DeviceID   string             `json:"device_id"`
	RequestID  string             `json:"request_id" doc:"Запрос, данные которого проанализированы"`
	ReceivedAt time.Time          `json:"received_at"`
	Analysis   analytics.Analysis `json:"analysis"`
	Digest     string             `json:"digest" doc:"Текстовая сводка для озвучивания"`
}
