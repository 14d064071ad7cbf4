package client

import (
	"fmt"
	"net/http"
	"time"

	"healthsync/internal/domain/analytics"
)

// StatusResponse ответ сервера на регистрацию и загрузку данных
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DeviceInfo регистрация устройства без самого токена
type DeviceInfo struct {
	DeviceID         string    `json:"device_id"`
	OwnerID          string    `json:"owner_id,omitempty"`
	TokenFingerprint string    `json:"token_fingerprint"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RegisterDeviceParams struct {
	DeviceID string `json:"device_id"`
	Token    string `json:"token"`
	OwnerID  string `json:"owner_id,omitempty"`
}

type CreateRequestParams struct {
	DeviceID  string   `json:"device_id"`
	Metrics   []string `json:"metrics"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

type CreateRequestResult struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// AnalyticsReport ответ GET /api/v1/health/analytics
type AnalyticsReport struct {
	Date       string             `json:"date"`
	DeviceID   string             `json:"device_id"`
	RequestID  string             `json:"request_id"`
	ReceivedAt time.Time          `json:"received_at"`
	Analysis   analytics.Analysis `json:"analysis"`
	Digest     string             `json:"digest"`
}

// APIError ошибка, которую вернул сервер (RFC 9457 problem details)
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
}

// NotFound сообщает, что сервер ответил 404
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}
