package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/client/config"
	"healthsync/internal/domain/request"
	"healthsync/internal/domain/response"
)

const userAgent = "healthctl/1.0"

// Client обращается к HTTP API сервера HealthSync
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

func New(cfg *config.Config, log *slog.Logger) *Client {
	baseURL := cfg.ServerAddress
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &Client{
		http: httpClient,
		log:  log.With("component", "api_client"),
	}
}

// HealthCheck проверяет доступность сервера
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/v1/health", nil, nil, nil)
}

func (c *Client) RegisterDevice(ctx context.Context, p RegisterDeviceParams) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/devices/register", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDevice(ctx context.Context, deviceID string) (*DeviceInfo, error) {
	var out DeviceInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/devices/"+deviceID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRequest(ctx context.Context, p CreateRequestParams) (*CreateRequestResult, error) {
	var out CreateRequestResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/health/data/request", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RequestStatus(ctx context.Context, requestID string) (*request.DataRequest, error) {
	var out request.DataRequest
	if err := c.do(ctx, http.MethodGet, "/api/v1/health/data/request/"+requestID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Response(ctx context.Context, requestID string) (*response.DataResponse, error) {
	var out response.DataResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health/data/response/"+requestID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analytics запрашивает анализ последней загрузки; пустые параметры не передаются.
func (c *Client) Analytics(ctx context.Context, deviceID, date string) (*AnalyticsReport, error) {
	query := map[string]string{}
	if deviceID != "" {
		query["device_id"] = deviceID
	}
	if date != "" {
		query["date"] = date
	}

	var out AnalyticsReport
	if err := c.do(ctx, http.MethodGet, "/api/v1/health/analytics", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, result any) error {
	apiErr := &APIError{}
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	c.log.Debug("Отправка запроса", "method", method, "path", path)

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}

	c.log.Debug("Получен ответ",
		"status", resp.StatusCode(),
		"duration", resp.Time(),
	)

	if resp.IsError() {
		if apiErr.Status == 0 {
			apiErr.Status = resp.StatusCode()
		}
		return apiErr
	}
	return nil
}
