package request

import "time"

// DataRequest запрос на сбор данных с устройства
type DataRequest struct {
	ID           string       `json:"request_id"`
	DeviceID     string       `json:"device_id"`
	Metrics      []MetricKind `json:"data_types"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	Status       Status       `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

// Clone returns a deep copy so callers never share mutable state with a store.
func (r DataRequest) Clone() DataRequest {
	out := r
	out.Metrics = append([]MetricKind(nil), r.Metrics...)
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// Notification payload отправляемый устройству через push-транспорт
type Notification struct {
	RequestID string
	Metrics   []MetricKind
	StartDate string
	EndDate   string
}

// CreateInput параметры создания запроса
type CreateInput struct {
	DeviceID  string
	Metrics   []string
	StartDate string
	EndDate   string
}
