package device

import "context"

// Repository хранилище зарегистрированных устройств
type Repository interface {
	// Upsert сохраняет устройство; created_at первой регистрации сохраняется,
	// updated_at берется из переданной записи.
	Upsert(ctx context.Context, d Device) (*Device, error)
	// Get возвращает ErrNotRegistered, если устройства нет.
	Get(ctx context.Context, deviceID string) (*Device, error)
}
