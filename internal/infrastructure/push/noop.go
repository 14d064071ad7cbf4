package push

import (
	"context"

	"golang.org/x/exp/slog"

	"healthsync/internal/domain/request"
)

// Noop используется, когда транспорт не настроен: запрос остается открытым,
// устройство может забрать его по опросу.
type Noop struct {
	log *slog.Logger
}

func NewNoop(log *slog.Logger) *Noop {
	return &Noop{log: log.With("component", "push_noop")}
}

func (n *Noop) Send(_ context.Context, _ string, msg request.Notification) bool {
	n.log.Warn("push transport not configured, notification dropped",
		"request_id", msg.RequestID,
		"error", ErrTransportUncertain,
	)
	return false
}

func (n *Noop) Close() error {
	return nil
}
