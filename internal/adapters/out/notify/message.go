// Package notify delivers order events after commit. Events are published on a
// PostgreSQL channel with pg_notify, or written to the log when no channel is
// configured.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// maxDetail keeps payloads well below the 8000 byte limit of pg_notify.
const maxDetail = 1024

// Message is the wire form of an order event.
type Message struct {
	Kind        string    `json:"kind"`
	OrderID     string    `json:"order_id"`
	Number      string    `json:"number"`
	RequesterID string    `json:"requester_id"`
	ProviderID  string    `json:"provider_id"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewMessage converts an event.
func NewMessage(e order.Event) Message {
	detail := e.Detail
	if len(detail) > maxDetail {
		detail = detail[:maxDetail]
	}
	return Message{
		Kind:        string(e.Kind),
		OrderID:     e.OrderID.String(),
		Number:      e.Number.String(),
		RequesterID: e.RequesterID.String(),
		ProviderID:  e.ProviderID.String(),
		Status:      e.Status.String(),
		Detail:      detail,
		OccurredAt:  e.OccurredAt,
	}
}

// ParseMessage decodes a payload received on the channel.
func ParseMessage(payload string) (Message, error) {
	var m Message
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return Message{}, fmt.Errorf("decode notification: %w", err)
	}
	return m, nil
}
