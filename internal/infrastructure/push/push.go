// Package push доставляет уведомления о запросе данных на устройство.
// Отправка best-effort: любая ошибка превращается в false.
package push

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/config"
	"healthsync/internal/domain/request"
)

const messageType = "data_request"

// ErrTransportUncertain помечает в логах отправки, результат которых неизвестен.
var ErrTransportUncertain = errors.New("push delivery uncertain")

type Sender interface {
	Send(ctx context.Context, token string, n request.Notification) bool
	Close() error
}

// New собирает транспорт по PUSH_DRIVER.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (Sender, error) {
	switch cfg.Push.Driver {
	case config.PushNone:
		return NewNoop(log), nil
	case config.PushFCM:
		f, err := NewFCM(ctx, cfg.Push.CredentialsPath, log)
		if err != nil {
			return nil, err
		}
		return f, nil
	case config.PushMQTT:
		m, err := DialMQTT(cfg.Push.MQTT.Broker, cfg.Push.MQTT.ClientID, cfg.Push.MQTT.Username,
			cfg.Push.MQTT.Password, cfg.Push.MQTT.TopicPrefix, log)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown push driver %q", cfg.Push.Driver)
}

func metricNames(metrics []request.MetricKind) []string {
	out := make([]string, len(metrics))
	for i, m := range metrics {
		out[i] = m.String()
	}
	return out
}

func joinMetrics(metrics []request.MetricKind) string {
	return strings.Join(metricNames(metrics), ",")
}
