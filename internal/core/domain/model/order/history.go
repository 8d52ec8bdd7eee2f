package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// HistoryRecord is one entry of the append-only status history. Quote prices are
// recorded here rather than in a separate entity: Price is set on quote_sent
// (the proposed price) and quote_accept (the locked price).
type HistoryRecord struct {
	ID        kernel.UUID
	From      Status
	To        Status
	Reason    string
	Price     *kernel.Money
	ActorID   kernel.UUID
	ActorRole kernel.Role
	At        time.Time
}
