package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler opens an order from a template.
type CreateOrderCommandHandler struct {
	o *Orchestrator
}

func NewCreateOrderCommandHandler(o *Orchestrator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{o: o}
}

// Handle loads the template, builds the order in inquiry and stores it.
// Returns errs.ObjectNotFoundError when the template does not exist.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, c CreateOrderCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}

	uow := h.o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tmpl, err := uow.TemplateRepository().Get(ctx, c.TemplateID())
	if err != nil {
		return err
	}

	now := h.o.now()
	o, err := order.NewOrderFromTemplate(c.OrderID(), order.GenerateNumber(now), c.Actor().UserID(), tmpl, c.Name(), c.OrderType(), now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.o.log.Info().
		Str("order", o.Number().String()).
		Str("template", tmpl.ID().String()).
		Stringer("actor", c.Actor()).
		Msg("order created")
	h.o.emit(ctx, uow.PullEvents()...)
	return nil
}

type RequestQuoteCommandHandler struct{ o *Orchestrator }

func NewRequestQuoteCommandHandler(o *Orchestrator) RequestQuoteCommandHandler {
	return RequestQuoteCommandHandler{o: o}
}

func (h RequestQuoteCommandHandler) Handle(ctx context.Context, c RequestQuoteCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpRequestQuote, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			return o.RequestQuote(c.Actor(), now)
		})
	return err
}

type SendQuoteCommandHandler struct{ o *Orchestrator }

func NewSendQuoteCommandHandler(o *Orchestrator) SendQuoteCommandHandler {
	return SendQuoteCommandHandler{o: o}
}

func (h SendQuoteCommandHandler) Handle(ctx context.Context, c SendQuoteCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpSendQuote, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			return o.SendQuote(c.Price(), c.Actor(), now)
		})
	return err
}

type AcceptQuoteCommandHandler struct{ o *Orchestrator }

func NewAcceptQuoteCommandHandler(o *Orchestrator) AcceptQuoteCommandHandler {
	return AcceptQuoteCommandHandler{o: o}
}

func (h AcceptQuoteCommandHandler) Handle(ctx context.Context, c AcceptQuoteCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpAcceptQuote, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			return o.AcceptQuote(c.Actor(), now)
		})
	return err
}

type RejectQuoteCommandHandler struct{ o *Orchestrator }

func NewRejectQuoteCommandHandler(o *Orchestrator) RejectQuoteCommandHandler {
	return RejectQuoteCommandHandler{o: o}
}

func (h RejectQuoteCommandHandler) Handle(ctx context.Context, c RejectQuoteCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpRejectQuote, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			return o.RejectQuote(c.Reason(), c.Actor(), now)
		})
	return err
}

type UpdateOrderStatusCommandHandler struct{ o *Orchestrator }

func NewUpdateOrderStatusCommandHandler(o *Orchestrator) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{o: o}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, c UpdateOrderStatusCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpUpdateStatus, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			return o.UpdateStatus(c.Status(), c.Reason(), c.Actor(), now)
		})
	return err
}

type UpdateOrderPriceCommandHandler struct{ o *Orchestrator }

func NewUpdateOrderPriceCommandHandler(o *Orchestrator) UpdateOrderPriceCommandHandler {
	return UpdateOrderPriceCommandHandler{o: o}
}

func (h UpdateOrderPriceCommandHandler) Handle(ctx context.Context, c UpdateOrderPriceCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpUpdatePrice, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			return o.UpdatePrice(c.Price(), now)
		})
	return err
}

type CompleteOrderCommandHandler struct{ o *Orchestrator }

func NewCompleteOrderCommandHandler(o *Orchestrator) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{o: o}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, c CompleteOrderCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpCompleteOrder, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			return o.Complete(c.Actor(), now)
		})
	return err
}

type CancelOrderCommandHandler struct{ o *Orchestrator }

func NewCancelOrderCommandHandler(o *Orchestrator) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{o: o}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, c CancelOrderCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpCancelOrder, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			return o.Cancel(c.Reason(), c.Actor(), now)
		})
	return err
}

// DeleteOrderCommandHandler hard-deletes an order, then removes its stored files.
type DeleteOrderCommandHandler struct {
	o       *Orchestrator
	storage ports.FileStorage
}

func NewDeleteOrderCommandHandler(o *Orchestrator, storage ports.FileStorage) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{o: o, storage: storage}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, c DeleteOrderCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}

	uow := h.o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, c.OrderID())
	if err != nil {
		return err
	}
	if err = h.o.authorizer.Authorize(c.Actor(), services.OpDeleteOrder, o); err != nil {
		return err
	}

	if err = repo.Delete(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.o.log.Info().Str("order", o.Number().String()).Stringer("actor", c.Actor()).Msg("order deleted")
	h.o.deleteStored(ctx, h.storage, o.AttachmentRefs()...)
	h.o.emit(ctx, o.DeletedEvent(h.o.now()))
	return nil
}
