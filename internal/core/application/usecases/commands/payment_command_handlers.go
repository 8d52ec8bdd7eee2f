package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

type UpdatePaymentStatusCommandHandler struct{ o *Orchestrator }

func NewUpdatePaymentStatusCommandHandler(o *Orchestrator) UpdatePaymentStatusCommandHandler {
	return UpdatePaymentStatusCommandHandler{o: o}
}

func (h UpdatePaymentStatusCommandHandler) Handle(ctx context.Context, c UpdatePaymentStatusCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpUpdatePaymentStatus, byPaymentCard(c.CardID()),
		func(o *order.Order, now time.Time) error {
			return o.UpdatePaymentStatus(c.CardID(), c.Status(), c.Actor(), now)
		})
	return err
}

// UploadPaymentDocumentCommandHandler stores the bytes first, then attaches the
// reference in a transaction. A failed transaction deletes the stored bytes; a
// successful one deletes the document it replaced.
type UploadPaymentDocumentCommandHandler struct {
	o       *Orchestrator
	storage ports.FileStorage
}

func NewUploadPaymentDocumentCommandHandler(o *Orchestrator, storage ports.FileStorage) UploadPaymentDocumentCommandHandler {
	return UploadPaymentDocumentCommandHandler{o: o, storage: storage}
}

func (h UploadPaymentDocumentCommandHandler) Handle(ctx context.Context, c UploadPaymentDocumentCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}

	ref, err := h.storage.Save(ctx, fmt.Sprintf("payments/%s/%s", c.CardID(), c.Kind()), c.FileName(), c.Content())
	if err != nil {
		return fmt.Errorf("store %s: %w", c.Kind(), err)
	}

	op := services.OpUploadReceipt
	if c.Kind() == DocumentInvoice {
		op = services.OpUploadInvoice
	}

	var replaced kernel.FileRef
	_, err = h.o.mutate(ctx, c.Actor(), op, byPaymentCard(c.CardID()),
		func(o *order.Order, now time.Time) error {
			var err error
			if c.Kind() == DocumentInvoice {
				replaced, err = o.AttachPaymentInvoice(c.CardID(), ref, now)
			} else {
				replaced, err = o.AttachPaymentReceipt(c.CardID(), ref, now)
			}
			return err
		})
	if err != nil {
		h.o.deleteStored(ctx, h.storage, ref)
		return err
	}
	h.o.deleteStored(ctx, h.storage, replaced)
	return nil
}

type AddPaymentCardCommandHandler struct{ o *Orchestrator }

func NewAddPaymentCardCommandHandler(o *Orchestrator) AddPaymentCardCommandHandler {
	return AddPaymentCardCommandHandler{o: o}
}

func (h AddPaymentCardCommandHandler) Handle(ctx context.Context, c AddPaymentCardCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpAddPaymentCard, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			_, err := o.AddPaymentCard(c.Amount(), c.DueDate(), now)
			return err
		})
	return err
}

// AdvancePaidOrdersCommandHandler is the polling counterpart of the inline
// advance done by UpdatePaymentStatus. Each order is advanced in its own unit
// of work so one conflict does not hold back the rest.
type AdvancePaidOrdersCommandHandler struct{ o *Orchestrator }

func NewAdvancePaidOrdersCommandHandler(o *Orchestrator) AdvancePaidOrdersCommandHandler {
	return AdvancePaidOrdersCommandHandler{o: o}
}

// Handle returns the number of orders moved to in_progress.
func (h AdvancePaidOrdersCommandHandler) Handle(ctx context.Context, c AdvancePaidOrdersCommand) (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	waiting, err := h.awaitingPayment(ctx)
	if err != nil {
		return 0, err
	}

	system := kernel.SystemActor()
	advanced := 0
	var errList []error
	for _, w := range waiting {
		moved := false
		_, err = h.o.mutate(ctx, system, services.OpUpdateStatus, byOrder(w.ID()),
			func(o *order.Order, now time.Time) error {
				if !o.Advance(system, now) {
					return errUnchanged
				}
				moved = true
				return nil
			})
		if err != nil {
			errList = append(errList, fmt.Errorf("order %s: %w", w.Number(), err))
			continue
		}
		if moved {
			advanced++
		}
	}
	return advanced, errors.Join(errList...)
}

func (h AdvancePaidOrdersCommandHandler) awaitingPayment(ctx context.Context) ([]*order.Order, error) {
	uow := h.o.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllInStatus(ctx, order.AwaitingPayment)
}
