package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCountCompletedOrdersQueryIsNotConstructed = errors.New(
		"CountCompletedOrdersQuery must be created via NewCountCompletedOrdersQuery constructor",
	)
)

// CountCompletedOrdersQuery counts the completed orders a user took part in,
// on either side. The provider ranking job reads it.
type CountCompletedOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCountCompletedOrdersQuery creates a count query for userID.
func NewCountCompletedOrdersQuery(userID kernel.UUID) (CountCompletedOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return CountCompletedOrdersQuery{}, err
	}
	return CountCompletedOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q CountCompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrCountCompletedOrdersQueryIsNotConstructed)
}
