package response

import "context"

// Repository хранилище ответов, не более одного на запрос
type Repository interface {
	// Put перезаписывает предыдущий ответ с тем же request_id.
	Put(ctx context.Context, r DataResponse) error
	Get(ctx context.Context, requestID string) (*DataResponse, error)
	// Latest возвращает самый свежий ответ по правилу Newer; пустой deviceID означает любое устройство.
	// ErrNotFound если ответов нет.
	Latest(ctx context.Context, deviceID string) (*DataResponse, error)
}
