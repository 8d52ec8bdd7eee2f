package notify

import (
	"context"

	"orderflow/internal/core/domain/model/order"

	"github.com/rs/zerolog"
)

// LogNotifier writes every event to the log. It is used when no channel is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Emit(_ context.Context, e order.Event) error {
	m := NewMessage(e)
	n.log.Info().
		Str("kind", m.Kind).
		Str("order", m.OrderID).
		Str("number", m.Number).
		Str("status", m.Status).
		Str("detail", m.Detail).
		Time("occurred_at", m.OccurredAt).
		Msg("order event")
	return nil
}
