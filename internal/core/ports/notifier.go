package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// Notifier delivers order events to participants. It is called after commit;
// failures are logged by the caller and never undo the change.
type Notifier interface {
	Emit(ctx context.Context, event order.Event) error
}
