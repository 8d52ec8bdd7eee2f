// Package queries contains read operations. List and count queries read the
// tables directly with SQL; single-order views load the aggregate so that the
// capability check sees the same state commands do.
package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// OrderReader loads complete order aggregates without a transaction.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByContract(ctx context.Context, contractID kernel.UUID) (*order.Order, error)
	GetByFileKey(ctx context.Context, key string) (*order.Order, error)
}

func validateActor(a kernel.Actor) error {
	if a.Role() == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}
