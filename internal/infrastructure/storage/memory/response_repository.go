package memory

import (
	"context"
	"sync"

	"healthsync/internal/domain/response"
)

type ResponseRepository struct {
	mu        sync.RWMutex
	responses map[string]response.DataResponse
}

func NewResponseRepository() *ResponseRepository {
	return &ResponseRepository{responses: make(map[string]response.DataResponse)}
}

func (r *ResponseRepository) Put(_ context.Context, resp response.DataResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.responses[resp.RequestID] = resp
	return nil
}

func (r *ResponseRepository) Get(_ context.Context, requestID string) (*response.DataResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resp, ok := r.responses[requestID]
	if !ok {
		return nil, response.ErrNotFound
	}
	return &resp, nil
}

// Latest scans the whole table; map order does not matter because Newer is a total order.
func (r *ResponseRepository) Latest(_ context.Context, deviceID string) (*response.DataResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *response.DataResponse
	for _, resp := range r.responses {
		if deviceID != "" && resp.DeviceID != deviceID {
			continue
		}
		if best == nil || response.Newer(resp, *best) {
			candidate := resp
			best = &candidate
		}
	}

	if best == nil {
		return nil, response.ErrNotFound
	}
	return best, nil
}
