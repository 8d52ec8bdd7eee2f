package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")
)

// ListOrdersFilter narrows ListOrdersQuery. Nil fields are not filtered on.
type ListOrdersFilter struct {
	RequesterID *kernel.UUID
	ProviderID  *kernel.UUID
	Status      *order.Status
	Limit       int
	Offset      int
}

// ListOrdersQuery lists order summaries, newest first. Participants only ever
// see orders they are on; admins see everything the filter matches.
//
// Example:
//
//	status := order.InProgress
//	query, err := NewListOrdersQuery(actor, ListOrdersFilter{ProviderID: &providerID, Status: &status})
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actor  kernel.Actor
	filter ListOrdersFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the filter. A zero limit means DefaultListLimit.
func NewListOrdersQuery(actor kernel.Actor, filter ListOrdersFilter) (ListOrdersQuery, error) {
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}

	var errList []error
	errList = append(errList, validateActor(actor))
	if filter.Limit < 1 || filter.Limit > MaxListLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 1, MaxListLimit))
	}
	if filter.Offset < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("offset", filter.Offset, 0, "unbounded"))
	}
	if filter.Status != nil {
		errList = append(errList, filter.Status.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{actor: actor, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryResponse is one order summary.
type ListOrdersQueryResponse struct {
	ID          kernel.UUID
	ShortCode   string
	Number      order.Number
	Name        string
	Type        string
	RequesterID kernel.UUID
	ProviderID  kernel.UUID
	Status      order.Status
	Price       kernel.Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
