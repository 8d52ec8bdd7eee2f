// Package ports defines the contracts between the order core and infrastructure:
// persistence, file storage, identity lookup, notifications and document rendering.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read returns the complete aggregate: contract with clauses, payment
// cards, delivery items with files, confirmation blocks and history.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. It fails with
	// errs.VersionIsInvalidError when the stored version no longer matches
	// the one the aggregate was read with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes the order and every row it owns.
	Delete(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns errs.ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// The lookups below resolve a sub-record id to its owning order.
	GetByContract(ctx context.Context, contractID kernel.UUID) (*order.Order, error)
	GetByPaymentCard(ctx context.Context, cardID kernel.UUID) (*order.Order, error)
	GetByDeliveryItem(ctx context.Context, itemID kernel.UUID) (*order.Order, error)
	GetByDeliveryFile(ctx context.Context, fileID kernel.UUID) (*order.Order, error)
	GetByConfirmationBlock(ctx context.Context, blockID kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves every order in status, oldest first.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
