package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/device"
	"healthsync/internal/domain/request"
	"healthsync/internal/domain/response"
	"healthsync/internal/infrastructure/storage/memory"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []request.Notification
}

func (n *recordingNotifier) Send(_ context.Context, _ string, msg request.Notification) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return true
}

func newTestMux(t *testing.T) (*chi.Mux, *recordingNotifier) {
	t.Helper()
	log := slog.Default()
	store := memory.New()
	notifier := &recordingNotifier{}

	devices := device.NewService(store.Devices, log)
	requests := request.NewService(store.Requests, devices, notifier, 0, log)
	responses := response.NewService(store.Responses, requests, nil, log)

	mux := New(Services{
		Devices:    devices,
		Requests:   requests,
		Responses:  responses,
		Resolver:   response.NewResolver(store.Responses),
		Store:      store,
		TargetDate: "2025-12-10",
	}, log)
	return mux, notifier
}

func do(t *testing.T, mux http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func TestNew_RegistersAllOperations(t *testing.T) {
	var mux *chi.Mux
	require.NotPanics(t, func() { mux, _ = newTestMux(t) })

	rec, _ := do(t, mux, http.MethodGet, "/openapi.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, path := range []string{
		"/api/v1/health",
		"/api/v1/devices/register",
		"/api/v1/devices/{device_id}",
		"/api/v1/health/data/request",
		"/api/v1/health/data/request/{request_id}",
		"/api/v1/health/data/response",
		"/api/v1/health/data/response/{request_id}",
		"/api/v1/health/analytics",
	} {
		assert.Contains(t, rec.Body.String(), `"`+path+`"`, path)
	}
}

func TestAPI_Lifecycle(t *testing.T) {
	mux, notifier := newTestMux(t)

	rec, _ := do(t, mux, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, body := do(t, mux, http.MethodPost, "/api/v1/devices/register", map[string]any{
		"device_id": "pixel-8",
		"token":     "tok-1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", body["status"])

	rec, body = do(t, mux, http.MethodPost, "/api/v1/health/data/request", map[string]any{
		"device_id":  "pixel-8",
		"metrics":    []string{"steps", "sleep"},
		"start_date": "2025-12-09",
		"end_date":   "2025-12-10",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "sent", body["status"])
	requestID, _ := body["request_id"].(string)
	require.NotEmpty(t, requestID)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, requestID, notifier.sent[0].RequestID)

	rec, body = do(t, mux, http.MethodPost, "/api/v1/health/data/response", map[string]any{
		"request_id": requestID,
		"device_id":  "pixel-8",
		"timestamp":  "2025-12-10T12:00:05Z",
		"data": map[string]any{
			"steps": []map[string]any{
				{"date": "2025-12-09", "count": 12000},
				{"date": "2025-12-10", "count": 8500},
			},
			"sleep": []map[string]any{
				{"date": "2025-12-10", "start_time": "2025-12-09T23:30:00Z", "end_time": "2025-12-10T05:00:00Z", "hours": 5.5},
			},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", body["status"])

	rec, body = do(t, mux, http.MethodGet, "/api/v1/health/data/request/"+requestID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", body["status"])
	assert.NotEmpty(t, body["completed_at"])

	rec, body = do(t, mux, http.MethodGet, "/api/v1/health/data/response/"+requestID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pixel-8", body["device_id"])

	rec, body = do(t, mux, http.MethodGet, "/api/v1/health/analytics?device_id=pixel-8", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2025-12-10", body["date"])
	assert.Contains(t, body["digest"], "- Total: 8,500 steps")
}

func TestAPI_Errors(t *testing.T) {
	mux, _ := newTestMux(t)

	rec, _ := do(t, mux, http.MethodPost, "/api/v1/health/data/request", map[string]any{
		"device_id":  "ghost",
		"metrics":    []string{"steps"},
		"start_date": "2025-12-09",
		"end_date":   "2025-12-10",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, mux, http.MethodPost, "/api/v1/health/data/response", map[string]any{
		"request_id": "req_unknown",
		"device_id":  "pixel-8",
		"timestamp":  "2025-12-10T12:00:05Z",
		"data":       map[string]any{},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, mux, http.MethodGet, "/api/v1/health/data/request/req_unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, mux, http.MethodGet, "/api/v1/health/analytics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
