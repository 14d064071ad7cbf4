// Package events публикует доменные события в Redis Streams.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/exp/slog"

	"healthsync/internal/app/server/config"
)

type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
	Close() error
}

// StreamPublisher пишет события XADD'ом: поля type, data (json), timestamp.
type StreamPublisher struct {
	client *redis.Client
	stream string
	log    *slog.Logger
	now    func() time.Time
}

func NewStreamPublisher(client *redis.Client, stream string, log *slog.Logger) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
		log:    log.With("component", "events", "stream", stream),
		now:    time.Now,
	}
}

func (p *StreamPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", eventType, err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type":      eventType,
			"data":      string(data),
			"timestamp": p.now().Unix(),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}

	p.log.Debug("event published", "type", eventType, "id", id)
	return nil
}

func (p *StreamPublisher) Close() error {
	return p.client.Close()
}

// Noop: публикация отключена (REDIS_ADDR не задан)
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

func (Noop) Close() error { return nil }

// New подключается к Redis, если задан REDIS_ADDR.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (Publisher, error) {
	if cfg.Events.RedisAddr == "" {
		log.Info("redis not configured, events disabled")
		return Noop{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Events.RedisAddr,
		Password: cfg.Events.RedisPassword,
		DB:       cfg.Events.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info("connected to redis", "addr", cfg.Events.RedisAddr)
	return NewStreamPublisher(client, cfg.Events.Stream, log), nil
}
