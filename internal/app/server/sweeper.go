package server

import (
	"context"
	"time"

	"golang.org/x/exp/slog"
)

// Expirer закрывает запросы, на которые устройство так и не ответило
type Expirer interface {
	ExpireStale(ctx context.Context, ttl time.Duration) (int, error)
}

// Sweep calls ExpireStale every interval until ctx is done.
func Sweep(ctx context.Context, e Expirer, ttl, interval time.Duration, log *slog.Logger) {
	log = log.With("component", "request_sweeper")
	log.Info("request sweeper started", "ttl", ttl, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("request sweeper stopped")
			return
		case <-ticker.C:
			if _, err := e.ExpireStale(ctx, ttl); err != nil {
				log.Error("failed to expire stale requests", "error", err)
			}
		}
	}
}
