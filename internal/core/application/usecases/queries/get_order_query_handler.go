package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// GetOrderQueryHandler loads an order and checks that the actor may see it.
type GetOrderQueryHandler struct {
	orders     OrderReader
	authorizer services.Authorizer
}

// NewGetOrderQueryHandler creates a handler reading through orders.
func NewGetOrderQueryHandler(orders OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, authorizer: services.NewAuthorizer()}
}

// Handle returns the order, errs.ObjectNotFoundError when it does not exist and
// errs.ForbiddenError when the actor is not a participant.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.orderID)
	if err != nil {
		return nil, err
	}
	if err = h.authorizer.Authorize(query.actor, services.OpViewOrder, o); err != nil {
		return nil, err
	}
	return o, nil
}
