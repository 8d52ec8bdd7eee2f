package queries

import (
	"context"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries straight from the orders table.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. An empty page is an empty slice, never nil.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	f := query.filter
	if f.RequesterID != nil {
		where = append(where, "requester_id = ?")
		args = append(args, f.RequesterID.Bytes())
	}
	if f.ProviderID != nil {
		where = append(where, "provider_id = ?")
		args = append(args, f.ProviderID.Bytes())
	}
	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, int(*f.Status))
	}
	if !query.actor.IsPrivileged() {
		self := query.actor.UserID().Bytes()
		where = append(where, "(requester_id = ? OR provider_id = ?)")
		args = append(args, self, self)
	}

	stmt := `
		SELECT
			id,
			number,
			name,
			type,
			requester_id,
			provider_id,
			status,
			price,
			created_at,
			updated_at
		FROM orders`
	if len(where) > 0 {
		stmt += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	stmt += "\n\t\tORDER BY created_at DESC, id\n\t\tLIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp                      ListOrdersQueryResponse
			id, requesterID, provider uuid.UUID
			number                    string
			status                    int
			price                     decimal.Decimal
		)
		if err = rows.Scan(
			&id,
			&number,
			&resp.Name,
			&resp.Type,
			&requesterID,
			&provider,
			&status,
			&price,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.RequesterID, err = kernel.UUIDFromBytes(requesterID[:]); err != nil {
			return nil, err
		}
		if resp.ProviderID, err = kernel.UUIDFromBytes(provider[:]); err != nil {
			return nil, err
		}
		if resp.Price, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		resp.ShortCode = resp.ID.ShortCode()
		resp.Number = order.Number(number)
		resp.Status = order.Status(status)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
