package response

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/healthdata"
	"healthsync/internal/domain/request"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Put(ctx context.Context, r DataResponse) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, requestID string) (*DataResponse, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DataResponse), args.Error(1)
}

func (m *MockRepository) Latest(ctx context.Context, deviceID string) (*DataResponse, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DataResponse), args.Error(1)
}

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Get(ctx context.Context, id string) (*request.DataRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.DataRequest), args.Error(1)
}

func (m *MockTracker) MarkStatus(ctx context.Context, id string, status request.Status, errMsg string) (*request.DataRequest, error) {
	args := m.Called(ctx, id, status, errMsg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.DataRequest), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

var testNow = time.Date(2025, 12, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, tracker RequestTracker, pub Publisher) *Service {
	s := NewService(repo, tracker, pub, slog.Default())
	s.now = func() time.Time { return testNow }
	return s
}

func sampleInput() ReceiveInput {
	return ReceiveInput{
		RequestID: "req_1",
		DeviceID:  "device-123",
		Timestamp: "2025-12-10T11:59:58Z",
		Data: healthdata.Snapshot{
			Steps: []healthdata.DailySteps{{Date: "2025-12-10", Count: 8500}},
		},
	}
}

func TestService_Receive(t *testing.T) {
	repo := new(MockRepository)
	tracker := new(MockTracker)
	pub := new(MockPublisher)
	service := newTestService(repo, tracker, pub)

	tracker.On("Get", mock.Anything, "req_1").
		Return(&request.DataRequest{ID: "req_1", DeviceID: "device-123", Status: request.StatusSent}, nil)
	repo.On("Put", mock.Anything, mock.MatchedBy(func(r DataResponse) bool {
		return r.RequestID == "req_1" && r.DeviceID == "device-123" &&
			r.DeviceTimestamp == "2025-12-10T11:59:58Z" && r.ReceivedAt.Equal(testNow) &&
			len(r.Payload.Steps) == 1
	})).Return(nil)
	tracker.On("MarkStatus", mock.Anything, "req_1", request.StatusCompleted, "").
		Return(&request.DataRequest{ID: "req_1", Status: request.StatusCompleted}, nil)
	pub.On("Publish", mock.Anything, EventReceived, ReceivedEvent{
		RequestID:  "req_1",
		DeviceID:   "device-123",
		ReceivedAt: testNow,
		Counts:     map[string]int{"steps": 1},
	}).Return(nil)

	resp, err := service.Receive(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "req_1", resp.RequestID)
	assert.Equal(t, testNow, resp.ReceivedAt)

	repo.AssertExpectations(t)
	tracker.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestService_Receive_UnknownRequest(t *testing.T) {
	repo := new(MockRepository)
	tracker := new(MockTracker)
	service := newTestService(repo, tracker, nil)

	tracker.On("Get", mock.Anything, "req_1").Return(nil, request.ErrNotFound)

	_, err := service.Receive(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrUnknownRequest)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	tracker.AssertNotCalled(t, "MarkStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Receive_DeviceMismatch(t *testing.T) {
	repo := new(MockRepository)
	tracker := new(MockTracker)
	service := newTestService(repo, tracker, nil)

	tracker.On("Get", mock.Anything, "req_1").
		Return(&request.DataRequest{ID: "req_1", DeviceID: "other-device", Status: request.StatusSent}, nil)

	_, err := service.Receive(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrDeviceMismatch)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestService_Receive_FailedRequestRejected(t *testing.T) {
	repo := new(MockRepository)
	tracker := new(MockTracker)
	service := newTestService(repo, tracker, nil)

	tracker.On("Get", mock.Anything, "req_1").
		Return(&request.DataRequest{ID: "req_1", DeviceID: "device-123", Status: request.StatusFailed}, nil)

	_, err := service.Receive(context.Background(), sampleInput())
	assert.ErrorIs(t, err, request.ErrIllegalTransition)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestService_Receive_StoreFailureMarksFailed(t *testing.T) {
	repo := new(MockRepository)
	tracker := new(MockTracker)
	pub := new(MockPublisher)
	service := newTestService(repo, tracker, pub)

	boom := errors.New("disk full")
	tracker.On("Get", mock.Anything, "req_1").
		Return(&request.DataRequest{ID: "req_1", DeviceID: "device-123", Status: request.StatusSent}, nil)
	repo.On("Put", mock.Anything, mock.Anything).Return(boom)
	tracker.On("MarkStatus", mock.Anything, "req_1", request.StatusFailed, "store response: disk full").
		Return(&request.DataRequest{ID: "req_1", Status: request.StatusFailed}, nil)

	_, err := service.Receive(context.Background(), sampleInput())

	var corrErr *CorrelationError
	require.ErrorAs(t, err, &corrErr)
	assert.Equal(t, "req_1", corrErr.RequestID)
	assert.ErrorIs(t, err, boom)

	tracker.AssertExpectations(t)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Receive_TransitionFailureMarksFailed(t *testing.T) {
	repo := new(MockRepository)
	tracker := new(MockTracker)
	service := newTestService(repo, tracker, nil)

	tracker.On("Get", mock.Anything, "req_1").
		Return(&request.DataRequest{ID: "req_1", DeviceID: "device-123", Status: request.StatusSent}, nil)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	tracker.On("MarkStatus", mock.Anything, "req_1", request.StatusCompleted, "").
		Return(nil, errors.New("connection reset"))
	tracker.On("MarkStatus", mock.Anything, "req_1", request.StatusFailed, "complete request: connection reset").
		Return(&request.DataRequest{ID: "req_1", Status: request.StatusFailed}, nil)

	_, err := service.Receive(context.Background(), sampleInput())

	var corrErr *CorrelationError
	assert.ErrorAs(t, err, &corrErr)
	tracker.AssertExpectations(t)
}

func TestService_Receive_PublishErrorIsNotFatal(t *testing.T) {
	repo := new(MockRepository)
	tracker := new(MockTracker)
	pub := new(MockPublisher)
	service := newTestService(repo, tracker, pub)

	tracker.On("Get", mock.Anything, "req_1").
		Return(&request.DataRequest{ID: "req_1", DeviceID: "device-123", Status: request.StatusCompleted}, nil)
	repo.On("Put", mock.Anything, mock.Anything).Return(nil)
	tracker.On("MarkStatus", mock.Anything, "req_1", request.StatusCompleted, "").
		Return(&request.DataRequest{ID: "req_1", Status: request.StatusCompleted}, nil)
	pub.On("Publish", mock.Anything, EventReceived, mock.Anything).Return(errors.New("redis down"))

	resp, err := service.Receive(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestService_Receive_InvalidInput(t *testing.T) {
	service := newTestService(new(MockRepository), new(MockTracker), nil)

	in := sampleInput()
	in.RequestID = ""
	_, err := service.Receive(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = sampleInput()
	in.DeviceID = "  "
	_, err = service.Receive(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetResponse(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo, new(MockTracker), nil)

	repo.On("Get", mock.Anything, "req_1").Return(&DataResponse{RequestID: "req_1"}, nil)
	repo.On("Get", mock.Anything, "missing").Return(nil, ErrNotFound)

	resp, err := service.GetResponse(context.Background(), "req_1")
	require.NoError(t, err)
	assert.Equal(t, "req_1", resp.RequestID)

	_, err = service.GetResponse(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewer(t *testing.T) {
	early := DataResponse{RequestID: "req_b", ReceivedAt: testNow}
	late := DataResponse{RequestID: "req_c", ReceivedAt: testNow.Add(time.Second)}
	tie := DataResponse{RequestID: "req_a", ReceivedAt: testNow}

	assert.True(t, Newer(late, early))
	assert.False(t, Newer(early, late))
	assert.True(t, Newer(tie, early))
	assert.False(t, Newer(early, tie))
}
