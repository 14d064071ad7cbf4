package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/exp/slog"

	"healthsync/internal/domain/request"
	"healthsync/internal/utils/fingerprint"
)

const (
	mqttQoS            = 1
	mqttDefaultTimeout = 10 * time.Second
)

type mqttPayload struct {
	Type      string   `json:"type"`
	RequestID string   `json:"request_id"`
	DataTypes []string `json:"data_types"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

// MQTT публикует запрос в топик устройства <prefix>/<token>/requests.
type MQTT struct {
	client mqtt.Client
	prefix string
	log    *slog.Logger
}

func DialMQTT(broker, clientID, username, password, prefix string, log *slog.Logger) (*MQTT, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)

	if username != "" {
		opts.SetUsername(username)
	}
	if password != "" {
		opts.SetPassword(password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info("connected to mqtt broker", "broker", broker)
	return NewMQTT(client, prefix, log), nil
}

func NewMQTT(client mqtt.Client, prefix string, log *slog.Logger) *MQTT {
	return &MQTT{
		client: client,
		prefix: prefix,
		log:    log.With("component", "push_mqtt"),
	}
}

func (m *MQTT) Topic(token string) string {
	return fmt.Sprintf("%s/%s/requests", m.prefix, token)
}

func (m *MQTT) Send(ctx context.Context, token string, n request.Notification) bool {
	payload, err := json.Marshal(mqttPayload{
		Type:      messageType,
		RequestID: n.RequestID,
		DataTypes: metricNames(n.Metrics),
		StartDate: n.StartDate,
		EndDate:   n.EndDate,
	})
	if err != nil {
		m.log.Error("failed to encode mqtt payload", "request_id", n.RequestID, "error", err)
		return false
	}

	timeout := mqttDefaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	t := m.client.Publish(m.Topic(token), mqttQoS, false, payload)
	if !t.WaitTimeout(timeout) {
		m.log.Warn("mqtt publish timed out",
			"request_id", n.RequestID,
			"token", fingerprint.Of(token),
			"error", ErrTransportUncertain,
		)
		return false
	}
	if err := t.Error(); err != nil {
		m.log.Error("failed to publish mqtt message",
			"request_id", n.RequestID,
			"token", fingerprint.Of(token),
			"error", err,
		)
		return false
	}

	m.log.Info("mqtt message published", "request_id", n.RequestID)
	return true
}

func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
