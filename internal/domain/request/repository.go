package request

import (
	"context"
	"time"
)

// Repository хранилище запросов данных
type Repository interface {
	// Create вставляет новый запрос, ErrDuplicateID если id уже занят.
	Create(ctx context.Context, r *DataRequest) error
	Get(ctx context.Context, id string) (*DataRequest, error)
	// Update атомарно применяет fn к одной записи. Если fn вернула ошибку,
	// запись не меняется и ошибка возвращается как есть.
	Update(ctx context.Context, id string, fn func(r *DataRequest) error) (*DataRequest, error)
	// ListOpen возвращает pending/sent запросы, созданные раньше createdBefore.
	ListOpen(ctx context.Context, createdBefore time.Time) ([]DataRequest, error)
}
