package device

import "time"

type registerInput struct {
	Body registerRequest
}

type registerRequest struct {
	DeviceID string `json:"device_id" minLength:"1" example:"pixel-8-anna" doc:"ID устройства"`
	Token    string `json:"token" minLength:"1" doc:"Push-токен устройства (FCM registration token или MQTT client id)"`
	OwnerID  string `json:"owner_id,omitempty" doc:"ID владельца устройства"`
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Device pixel-8-anna registered successfully"`
}

type getInput struct {
	DeviceID string `path:"device_id" example:"pixel-8-anna" doc:"ID устройства"`
}

type getOutput struct {
	Body deviceResponse
}

type deviceResponse struct {
	DeviceID         string    `json:"device_id"`
	OwnerID          string    `json:"owner_id,omitempty"`
	TokenFingerprint string    `json:"token_fingerprint" doc:"Отпечаток push-токена, сам токен не раскрывается"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
