package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthsync/internal/domain/request"
)

type RequestRepository struct {
	mu       sync.RWMutex
	requests map[string]request.DataRequest
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{requests: make(map[string]request.DataRequest)}
}

func (r *RequestRepository) Create(_ context.Context, req *request.DataRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID]; ok {
		return request.ErrDuplicateID
	}
	r.requests[req.ID] = req.Clone()
	return nil
}

func (r *RequestRepository) Get(_ context.Context, id string) (*request.DataRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, request.ErrNotFound
	}
	out := req.Clone()
	return &out, nil
}

// Update держит блокировку на время fn, поэтому fn не должна обращаться к репозиторию.
func (r *RequestRepository) Update(_ context.Context, id string, fn func(*request.DataRequest) error) (*request.DataRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, request.ErrNotFound
	}

	work := req.Clone()
	if err := fn(&work); err != nil {
		return nil, err
	}
	r.requests[id] = work.Clone()

	return &work, nil
}

func (r *RequestRepository) ListOpen(_ context.Context, createdBefore time.Time) ([]request.DataRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []request.DataRequest
	for _, req := range r.requests {
		if !req.Status.Terminal() && req.CreatedAt.Before(createdBefore) {
			out = append(out, req.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
