package response

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/healthdata"
	"healthsync/internal/domain/response"
)

type MockCorrelator struct {
	mock.Mock
}

func (m *MockCorrelator) Receive(ctx context.Context, in response.ReceiveInput) (*response.DataResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.DataResponse), args.Error(1)
}

func (m *MockCorrelator) GetResponse(ctx context.Context, requestID string) (*response.DataResponse, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.DataResponse), args.Error(1)
}

func newReceiveInput() *receiveInput {
	input := &receiveInput{}
	input.Body.RequestID = "req_1"
	input.Body.DeviceID = "pixel-8"
	input.Body.Timestamp = "2025-12-10T12:00:05Z"
	input.Body.Data = healthdata.Snapshot{
		Steps: []healthdata.DailySteps{{Date: "2025-12-10", Count: 8500}},
	}
	return input
}

func TestHandler_Receive(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "unknown request", serviceErr: response.ErrUnknownRequest, wantStatus: http.StatusNotFound},
		{name: "device mismatch", serviceErr: response.ErrDeviceMismatch, wantStatus: http.StatusConflict},
		{name: "correlation failure", serviceErr: &response.CorrelationError{RequestID: "req_1", Err: errors.New("disk full")}, wantStatus: http.StatusInternalServerError},
	}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockCorrelator)
		h := NewHandler(svc, slog.Default(), nil)
		svc.On("Receive", mock.Anything, mock.MatchedBy(func(in response.ReceiveInput) bool {
			return in.RequestID == "req_1" && in.DeviceID == "pixel-8" && len(in.Data.Steps) == 1
		})).Return(&response.DataResponse{RequestID: "req_1"}, nil)

		resp, err := h.receive(context.Background(), newReceiveInput())

		require.NoError(t, err)
		assert.Equal(t, "success", resp.Body.Status)
		assert.Equal(t, "Data received successfully", resp.Body.Message)
		svc.AssertExpectations(t)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCorrelator)
			h := NewHandler(svc, slog.Default(), nil)
			svc.On("Receive", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			resp, err := h.receive(context.Background(), newReceiveInput())

			assert.Nil(t, resp)
			var se huma.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantStatus, se.GetStatus())
		})
	}
}

func TestHandler_Find(t *testing.T) {
	svc := new(MockCorrelator)
	h := NewHandler(svc, slog.Default(), nil)

	stored := &response.DataResponse{
		RequestID:  "req_1",
		DeviceID:   "pixel-8",
		ReceivedAt: time.Date(2025, 12, 10, 12, 0, 6, 0, time.UTC),
	}
	svc.On("GetResponse", mock.Anything, "req_1").Return(stored, nil)
	svc.On("GetResponse", mock.Anything, "req_2").Return(nil, response.ErrNotFound)

	resp, err := h.find(context.Background(), &findInput{RequestID: "req_1"})
	require.NoError(t, err)
	assert.Equal(t, stored, resp.Body)

	_, err = h.find(context.Background(), &findInput{RequestID: "req_2"})
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.GetStatus())
}

func TestHandler_Routes(t *testing.T) {
	svc := new(MockCorrelator)
	_, api := humatest.New(t)
	NewHandler(svc, slog.Default(), nil).SetupRoutes(api)

	svc.On("Receive", mock.Anything, mock.Anything).Return(&response.DataResponse{RequestID: "req_1"}, nil)

	resp := api.Post("/api/v1/health/data/response", map[string]any{
		"request_id": "req_1",
		"device_id":  "pixel-8",
		"timestamp":  "2025-12-10T12:00:05Z",
		"data": map[string]any{
			"steps": []map[string]any{{"date": "2025-12-10", "count": 8500}},
		},
	})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Data received successfully")
}
