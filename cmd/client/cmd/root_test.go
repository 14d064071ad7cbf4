package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"healthsync/cmd/client/cmd/common"
	"healthsync/internal/infrastructure/export"
)

func fakeServer(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/api/v1/health/data/request", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "pixel-8", body["device_id"])
		assert.Equal(t, []any{"steps", "heart_rate", "sleep"}, body["metrics"])
		assert.Equal(t, "2025-12-03", body["start_date"])
		assert.Equal(t, "2025-12-10", body["end_date"])
		writeJSON(w, map[string]string{"request_id": "req_1", "status": "sent", "message": "Request sent to device"})
	})
	mux.HandleFunc("/api/v1/health/data/request/req_1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"request_id": "req_1",
			"device_id":  "pixel-8",
			"data_types": []string{"steps", "sleep"},
			"start_date": "2025-12-03",
			"end_date":   "2025-12-10",
			"status":     "completed",
			"created_at": "2025-12-10T12:00:00Z",
		})
	})
	mux.HandleFunc("/api/v1/health/analytics", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"date":       "2025-12-10",
			"device_id":  "pixel-8",
			"request_id": "req_1",
			"digest":     "Steps:\n- Total: 8,500 steps",
			"analysis": map[string]any{
				"steps_summary": map[string]any{"total": 8500, "average": 8500, "trend": "stable"},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	common.JSONOutput = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestPing(t *testing.T) {
	addr := fakeServer(t)
	out := run(t, "--server", addr, "ping")
	assert.Contains(t, out, "Соединение с сервером установлено")
}

func TestRequestCreate(t *testing.T) {
	addr := fakeServer(t)
	out := run(t, "--server", addr, "request", "create", "pixel-8", "--to", "2025-12-10")
	assert.Contains(t, out, "req_1")
	assert.Contains(t, out, "sent")
}

func TestRequestStatus(t *testing.T) {
	addr := fakeServer(t)

	out := run(t, "--server", addr, "request", "status", "req_1")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "steps, sleep")

	out = run(t, "--server", addr, "--json", "request", "status", "req_1")
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "completed", decoded["status"])
}

func TestAnalyticsShow_XLSX(t *testing.T) {
	addr := fakeServer(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	out := run(t, "--server", addr, "analytics", "show", "--xlsx", path)
	assert.Contains(t, out, "- Total: 8,500 steps")
	assert.Contains(t, out, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.SheetSummary, export.SheetAnomalies, export.SheetTrends}, f.GetSheetList())
}
