package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// CountCompletedOrdersQueryHandler counts completed orders with one SQL statement.
type CountCompletedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewCountCompletedOrdersQueryHandler(db *gorm.DB) CountCompletedOrdersQueryHandler {
	return CountCompletedOrdersQueryHandler{db: db}
}

func (h CountCompletedOrdersQueryHandler) Handle(ctx context.Context, query CountCompletedOrdersQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	id := query.userID.Bytes()
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders
		WHERE status = ?
			AND (requester_id = ? OR provider_id = ?)
	`, int(order.Completed), id, id).Row().Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
