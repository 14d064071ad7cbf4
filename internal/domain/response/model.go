package response

import (
	"time"

	"healthsync/internal/domain/healthdata"
)

// DataResponse данные, загруженные устройством в ответ на запрос
type DataResponse struct {
	RequestID       string              `json:"request_id"`
	DeviceID        string              `json:"device_id"`
	Payload         healthdata.Snapshot `json:"data"`
	DeviceTimestamp string              `json:"device_timestamp"`
	ReceivedAt      time.Time           `json:"received_at"`
}

// Newer reports whether a wins over b when picking the latest response:
// later received_at first, equal instants resolved by the smaller request id.
func Newer(a, b DataResponse) bool {
	if !a.ReceivedAt.Equal(b.ReceivedAt) {
		return a.ReceivedAt.After(b.ReceivedAt)
	}
	return a.RequestID < b.RequestID
}

// ReceiveInput входящая загрузка данных от устройства
type ReceiveInput struct {
	RequestID string
	DeviceID  string
	Timestamp string
	Data      healthdata.Snapshot
}

// ReceivedEvent публикуется после успешной корреляции
type ReceivedEvent struct {
	RequestID  string         `json:"request_id"`
	DeviceID   string         `json:"device_id"`
	ReceivedAt time.Time      `json:"received_at"`
	Counts     map[string]int `json:"counts"`
}

const EventReceived = "response.received"
