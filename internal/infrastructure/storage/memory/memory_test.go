package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/device"
	"healthsync/internal/domain/healthdata"
	"healthsync/internal/domain/request"
	"healthsync/internal/domain/response"
	"healthsync/internal/infrastructure/storage/memory"
)

type stubNotifier struct {
	ok bool
}

func (n stubNotifier) Send(context.Context, string, request.Notification) bool {
	return n.ok
}

func TestDeviceRepository_UpsertKeepsCreatedAt(t *testing.T) {
	repo := memory.NewDeviceRepository()
	ctx := context.Background()
	t0 := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	_, err := repo.Upsert(ctx, device.Device{ID: "d1", Token: "a", CreatedAt: t0, UpdatedAt: t0})
	require.NoError(t, err)
	d, err := repo.Upsert(ctx, device.Device{ID: "d1", Token: "b", CreatedAt: t1, UpdatedAt: t1})
	require.NoError(t, err)

	assert.Equal(t, "b", d.Token)
	assert.Equal(t, t0, d.CreatedAt)
	assert.Equal(t, t1, d.UpdatedAt)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, device.ErrNotRegistered)
}

func TestRequestRepository(t *testing.T) {
	repo := memory.NewRequestRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	req := &request.DataRequest{ID: "r1", Status: request.StatusPending, Metrics: []request.MetricKind{request.MetricSteps}, CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, req))
	assert.ErrorIs(t, repo.Create(ctx, req), request.ErrDuplicateID)

	// stored copy is isolated from the caller
	req.Metrics[0] = request.MetricSleep
	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, request.MetricSteps, got.Metrics[0])

	_, err = repo.Update(ctx, "r1", func(r *request.DataRequest) error {
		r.Status = request.StatusSent
		return fmt.Errorf("rejected")
	})
	assert.Error(t, err)
	got, _ = repo.Get(ctx, "r1")
	assert.Equal(t, request.StatusPending, got.Status)

	open, err := repo.ListOpen(ctx, now)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = repo.Update(ctx, "r1", func(r *request.DataRequest) error {
		r.Status = request.StatusCompleted
		return nil
	})
	require.NoError(t, err)
	open, err = repo.ListOpen(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = repo.Update(ctx, "nope", func(*request.DataRequest) error { return nil })
	assert.ErrorIs(t, err, request.ErrNotFound)
}

func TestResponseRepository_Latest(t *testing.T) {
	repo := memory.NewResponseRepository()
	ctx := context.Background()
	t0 := time.Date(2025, 12, 10, 10, 0, 0, 0, time.UTC)

	_, err := repo.Latest(ctx, "")
	assert.ErrorIs(t, err, response.ErrNotFound)

	require.NoError(t, repo.Put(ctx, response.DataResponse{RequestID: "req_b", DeviceID: "d1", ReceivedAt: t0}))
	require.NoError(t, repo.Put(ctx, response.DataResponse{RequestID: "req_a", DeviceID: "d1", ReceivedAt: t0}))
	require.NoError(t, repo.Put(ctx, response.DataResponse{RequestID: "req_c", DeviceID: "d2", ReceivedAt: t0.Add(time.Minute)}))

	latest, err := repo.Latest(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "req_a", latest.RequestID)

	latest, err = repo.Latest(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "req_c", latest.RequestID)

	_, err = repo.Latest(ctx, "d3")
	assert.ErrorIs(t, err, response.ErrNotFound)

	// overwrite, not append
	require.NoError(t, repo.Put(ctx, response.DataResponse{RequestID: "req_c", DeviceID: "d2", ReceivedAt: t0.Add(-time.Minute)}))
	latest, err = repo.Latest(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "req_a", latest.RequestID)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	log := slog.Default()
	store := memory.New()

	devices := device.NewService(store.Devices, log)
	tracker := request.NewService(store.Requests, devices, stubNotifier{ok: false}, time.Second, log)
	correlator := response.NewService(store.Responses, tracker, nil, log)
	resolver := response.NewResolver(store.Responses)

	_, err := tracker.Create(ctx, request.CreateInput{DeviceID: "phone", Metrics: []string{"steps"}, StartDate: "2025-12-10", EndDate: "2025-12-10"})
	assert.ErrorIs(t, err, device.ErrNotRegistered)

	_, err = devices.Register(ctx, "phone", "token-1", "user-1")
	require.NoError(t, err)

	req, err := tracker.Create(ctx, request.CreateInput{DeviceID: "phone", Metrics: []string{"steps"}, StartDate: "2025-12-10", EndDate: "2025-12-10"})
	require.NoError(t, err)
	assert.Equal(t, request.StatusSent, req.Status)
	assert.NotEmpty(t, req.ErrorMessage)

	_, err = correlator.Receive(ctx, response.ReceiveInput{RequestID: "req_unknown", DeviceID: "phone"})
	assert.ErrorIs(t, err, response.ErrUnknownRequest)
	_, err = store.Responses.Get(ctx, "req_unknown")
	assert.ErrorIs(t, err, response.ErrNotFound)

	_, err = correlator.Receive(ctx, response.ReceiveInput{
		RequestID: req.ID,
		DeviceID:  "phone",
		Timestamp: "2025-12-10T20:00:00Z",
		Data:      healthdata.Snapshot{Steps: []healthdata.DailySteps{{Date: "2025-12-10", Count: 9000}}},
	})
	require.NoError(t, err)

	done, err := tracker.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.False(t, done.CompletedAt.Before(done.CreatedAt))

	latest, err := resolver.LatestForDevice(ctx, "phone")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 9000, latest.Payload.Steps[0].Count)

	none, err := resolver.LatestForDevice(ctx, "tablet")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLifecycle_ConcurrentUploads(t *testing.T) {
	ctx := context.Background()
	log := slog.Default()
	store := memory.New()

	devices := device.NewService(store.Devices, log)
	tracker := request.NewService(store.Requests, devices, stubNotifier{ok: true}, time.Second, log)
	correlator := response.NewService(store.Responses, tracker, nil, log)

	_, err := devices.Register(ctx, "phone", "token-1", "")
	require.NoError(t, err)

	const n = 20
	ids := make([]string, n)
	for i := range ids {
		req, err := tracker.Create(ctx, request.CreateInput{DeviceID: "phone", Metrics: []string{"sleep"}, StartDate: "2025-12-10", EndDate: "2025-12-10"})
		require.NoError(t, err)
		ids[i] = req.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for k := 0; k < 3; k++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, _ = correlator.Receive(ctx, response.ReceiveInput{RequestID: id, DeviceID: "phone"})
			}(id)
		}
	}
	wg.Wait()

	for _, id := range ids {
		r, err := tracker.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, request.StatusCompleted, r.Status)
	}
}
