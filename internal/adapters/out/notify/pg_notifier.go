package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// DefaultChannel is the PostgreSQL channel order events are published on.
const DefaultChannel = "order_events"

// PgNotifier publishes events with pg_notify. Listeners receive them through
// LISTEN on the same channel.
type PgNotifier struct {
	db      *gorm.DB
	channel string
}

func NewPgNotifier(db *gorm.DB, channel string) *PgNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &PgNotifier{db: db, channel: channel}
}

func (n *PgNotifier) Emit(ctx context.Context, e order.Event) error {
	payload, err := json.Marshal(NewMessage(e))
	if err != nil {
		return err
	}
	if err = n.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", n.channel, string(payload)).Error; err != nil {
		return fmt.Errorf("notify %s: %w", e.Kind, err)
	}
	return nil
}
