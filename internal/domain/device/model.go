package device

import "time"

// Device регистрационная запись устройства
type Device struct {
	ID        string    `json:"device_id"`
	Token     string    `json:"-"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
