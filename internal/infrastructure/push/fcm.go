package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"

	"healthsync/internal/domain/request"
	"healthsync/internal/utils/fingerprint"
)

// messenger: часть messaging.Client, которой пользуется FCM
type messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type FCM struct {
	client messenger
	log    *slog.Logger
}

func NewFCM(ctx context.Context, credentialsPath string, log *slog.Logger) (*FCM, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}

	log.Info("firebase messaging initialized")
	return newFCM(client, log), nil
}

func newFCM(client messenger, log *slog.Logger) *FCM {
	return &FCM{
		client: client,
		log:    log.With("component", "push_fcm"),
	}
}

func (f *FCM) Send(ctx context.Context, token string, n request.Notification) bool {
	msg := &messaging.Message{
		Token: token,
		Data: map[string]string{
			"type":       messageType,
			"request_id": n.RequestID,
			"data_types": joinMetrics(n.Metrics),
			"start_date": n.StartDate,
			"end_date":   n.EndDate,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Title: "Health data request",
				Body:  fmt.Sprintf("Requesting data for %s to %s", n.StartDate, n.EndDate),
				Sound: "default",
			},
		},
	}

	id, err := f.client.Send(ctx, msg)
	if err != nil {
		if messaging.IsUnregistered(err) {
			f.log.Warn("fcm token is unregistered",
				"request_id", n.RequestID,
				"token", fingerprint.Of(token),
			)
			return false
		}
		f.log.Error("failed to send fcm message",
			"request_id", n.RequestID,
			"token", fingerprint.Of(token),
			"error", fmt.Errorf("%w: %v", ErrTransportUncertain, err),
		)
		return false
	}

	f.log.Info("fcm message sent", "request_id", n.RequestID, "message_id", id)
	return true
}

func (f *FCM) Close() error {
	return nil
}
