package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrRequestQuoteCommandIsNotConstructed = errors.New(
		"RequestQuoteCommand must be created via NewRequestQuoteCommand constructor",
	)
	ErrSendQuoteCommandIsNotConstructed = errors.New(
		"SendQuoteCommand must be created via NewSendQuoteCommand constructor",
	)
	ErrAcceptQuoteCommandIsNotConstructed = errors.New(
		"AcceptQuoteCommand must be created via NewAcceptQuoteCommand constructor",
	)
	ErrRejectQuoteCommandIsNotConstructed = errors.New(
		"RejectQuoteCommand must be created via NewRejectQuoteCommand constructor",
	)
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrUpdateOrderPriceCommandIsNotConstructed = errors.New(
		"UpdateOrderPriceCommand must be created via NewUpdateOrderPriceCommand constructor",
	)
	ErrCompleteOrderCommandIsNotConstructed = errors.New(
		"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
	)
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
)

// CreateOrderCommand opens an order from a template on behalf of the requester.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(actor, orderID, templateID, "Company logo", "design")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct {
	actor      kernel.Actor
	orderID    kernel.UUID
	templateID kernel.UUID
	name       string
	orderType  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifiers. The order id is chosen by the
// caller so it can be returned before the handler runs.
func NewCreateOrderCommand(actor kernel.Actor, orderID, templateID kernel.UUID, name, orderType string) (CreateOrderCommand, error) {
	if err := errors.Join(
		validateActor(actor),
		orderID.Validate(),
		templateID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	return CreateOrderCommand{
		actor:      actor,
		orderID:    orderID,
		templateID: templateID,
		name:       strings.TrimSpace(name),
		orderType:  strings.TrimSpace(orderType),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor     { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) TemplateID() kernel.UUID { return c.templateID }
func (c CreateOrderCommand) Name() string            { return c.name }
func (c CreateOrderCommand) OrderType() string       { return c.orderType }

// RequestQuoteCommand asks the provider for a quote.
type RequestQuoteCommand struct{ target }

func NewRequestQuoteCommand(actor kernel.Actor, orderID kernel.UUID) (RequestQuoteCommand, error) {
	t, err := newTarget(actor, orderID)
	return RequestQuoteCommand{t}, err
}

func (c RequestQuoteCommand) Validate() error {
	return c.guard.Validate(ErrRequestQuoteCommandIsNotConstructed)
}

func (c RequestQuoteCommand) OrderID() kernel.UUID { return c.id }

// SendQuoteCommand proposes a price.
type SendQuoteCommand struct {
	target
	price kernel.Money
}

func NewSendQuoteCommand(actor kernel.Actor, orderID kernel.UUID, price kernel.Money) (SendQuoteCommand, error) {
	t, err := newTarget(actor, orderID)
	if !price.IsPositive() {
		err = errors.Join(err, errs.NewValueIsInvalidError("price"))
	}
	if err != nil {
		return SendQuoteCommand{}, err
	}
	return SendQuoteCommand{target: t, price: price}, nil
}

func (c SendQuoteCommand) Validate() error {
	return c.guard.Validate(ErrSendQuoteCommandIsNotConstructed)
}

func (c SendQuoteCommand) OrderID() kernel.UUID { return c.id }
func (c SendQuoteCommand) Price() kernel.Money  { return c.price }

// AcceptQuoteCommand locks the proposed price.
type AcceptQuoteCommand struct{ target }

func NewAcceptQuoteCommand(actor kernel.Actor, orderID kernel.UUID) (AcceptQuoteCommand, error) {
	t, err := newTarget(actor, orderID)
	return AcceptQuoteCommand{t}, err
}

func (c AcceptQuoteCommand) Validate() error {
	return c.guard.Validate(ErrAcceptQuoteCommandIsNotConstructed)
}

func (c AcceptQuoteCommand) OrderID() kernel.UUID { return c.id }

// RejectQuoteCommand asks for another proposal.
type RejectQuoteCommand struct {
	target
	reason string
}

func NewRejectQuoteCommand(actor kernel.Actor, orderID kernel.UUID, reason string) (RejectQuoteCommand, error) {
	t, err := newTarget(actor, orderID)
	if err != nil {
		return RejectQuoteCommand{}, err
	}
	return RejectQuoteCommand{target: t, reason: strings.TrimSpace(reason)}, nil
}

func (c RejectQuoteCommand) Validate() error {
	return c.guard.Validate(ErrRejectQuoteCommandIsNotConstructed)
}

func (c RejectQuoteCommand) OrderID() kernel.UUID { return c.id }
func (c RejectQuoteCommand) Reason() string       { return c.reason }

// UpdateOrderStatusCommand is the administrative status override.
type UpdateOrderStatusCommand struct {
	target
	status order.Status
	reason string
}

func NewUpdateOrderStatusCommand(actor kernel.Actor, orderID kernel.UUID, status order.Status, reason string) (UpdateOrderStatusCommand, error) {
	t, err := newTarget(actor, orderID)
	if err = errors.Join(err, status.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return UpdateOrderStatusCommand{target: t, status: status, reason: strings.TrimSpace(reason)}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.id }
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }
func (c UpdateOrderStatusCommand) Reason() string       { return c.reason }

// UpdateOrderPriceCommand changes the price before any payment.
type UpdateOrderPriceCommand struct {
	target
	price kernel.Money
}

func NewUpdateOrderPriceCommand(actor kernel.Actor, orderID kernel.UUID, price kernel.Money) (UpdateOrderPriceCommand, error) {
	t, err := newTarget(actor, orderID)
	if !price.IsPositive() {
		err = errors.Join(err, errs.NewValueIsInvalidError("price"))
	}
	if err != nil {
		return UpdateOrderPriceCommand{}, err
	}
	return UpdateOrderPriceCommand{target: t, price: price}, nil
}

func (c UpdateOrderPriceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderPriceCommandIsNotConstructed)
}

func (c UpdateOrderPriceCommand) OrderID() kernel.UUID { return c.id }
func (c UpdateOrderPriceCommand) Price() kernel.Money  { return c.price }

// CompleteOrderCommand closes an order whose deliveries are accepted.
type CompleteOrderCommand struct{ target }

func NewCompleteOrderCommand(actor kernel.Actor, orderID kernel.UUID) (CompleteOrderCommand, error) {
	t, err := newTarget(actor, orderID)
	return CompleteOrderCommand{t}, err
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() kernel.UUID { return c.id }

// CancelOrderCommand stops a non-terminal order.
type CancelOrderCommand struct {
	target
	reason string
}

func NewCancelOrderCommand(actor kernel.Actor, orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	t, err := newTarget(actor, orderID)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{target: t, reason: strings.TrimSpace(reason)}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID { return c.id }
func (c CancelOrderCommand) Reason() string       { return c.reason }

// DeleteOrderCommand removes an order and everything it owns.
type DeleteOrderCommand struct{ target }

func NewDeleteOrderCommand(actor kernel.Actor, orderID kernel.UUID) (DeleteOrderCommand, error) {
	t, err := newTarget(actor, orderID)
	return DeleteOrderCommand{t}, err
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.UUID { return c.id }
