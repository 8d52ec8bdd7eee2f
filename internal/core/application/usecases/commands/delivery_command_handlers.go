package commands

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

type AddDeliveryItemCommandHandler struct{ o *Orchestrator }

func NewAddDeliveryItemCommandHandler(o *Orchestrator) AddDeliveryItemCommandHandler {
	return AddDeliveryItemCommandHandler{o: o}
}

func (h AddDeliveryItemCommandHandler) Handle(ctx context.Context, c AddDeliveryItemCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpAddDeliveryItem, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			_, err := o.AddDeliveryItem(c.Description(), now)
			return err
		})
	return err
}

// UploadDeliveryFileCommandHandler stores the bytes before the transaction and
// deletes them again when the transaction fails.
type UploadDeliveryFileCommandHandler struct {
	o       *Orchestrator
	storage ports.FileStorage
}

func NewUploadDeliveryFileCommandHandler(o *Orchestrator, storage ports.FileStorage) UploadDeliveryFileCommandHandler {
	return UploadDeliveryFileCommandHandler{o: o, storage: storage}
}

// Handle returns the id of the attached file.
func (h UploadDeliveryFileCommandHandler) Handle(ctx context.Context, c UploadDeliveryFileCommand) (kernel.UUID, error) {
	if err := c.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	ref, err := h.storage.Save(ctx, "deliveries/"+c.ItemID().String(), c.FileName(), c.Content())
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("store delivery file: %w", err)
	}

	var fileID kernel.UUID
	_, err = h.o.mutate(ctx, c.Actor(), services.OpUploadDeliveryFile, byDeliveryItem(c.ItemID()),
		func(o *order.Order, now time.Time) error {
			f, err := o.AttachDeliveryFile(c.ItemID(), ref, now)
			if err != nil {
				return err
			}
			fileID = f.ID()
			return nil
		})
	if err != nil {
		h.o.deleteStored(ctx, h.storage, ref)
		return kernel.UUID{}, err
	}
	return fileID, nil
}

type UpdateDeliveryStatusCommandHandler struct{ o *Orchestrator }

func NewUpdateDeliveryStatusCommandHandler(o *Orchestrator) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{o: o}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, c UpdateDeliveryStatusCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}

	op := services.OpReviewDelivery
	if c.Status() == delivery.Delivered {
		op = services.OpMarkDelivered
	}

	_, err := h.o.mutate(ctx, c.Actor(), op, byDeliveryItem(c.ItemID()),
		func(o *order.Order, now time.Time) error {
			//nolint:exhaustive // Pending is rejected by the constructor
			switch c.Status() {
			case delivery.Delivered:
				return o.MarkDelivered(c.ItemID(), c.Actor(), now)
			case delivery.ModificationRequested:
				return o.RequestModification(c.ItemID(), c.Comment(), c.Actor(), now)
			default:
				return o.AcceptDelivery(c.ItemID(), c.IsFinal(), c.Actor(), now)
			}
		})
	return err
}

// DeleteDeliveryFileCommandHandler removes the reference, then the bytes.
type DeleteDeliveryFileCommandHandler struct {
	o       *Orchestrator
	storage ports.FileStorage
}

func NewDeleteDeliveryFileCommandHandler(o *Orchestrator, storage ports.FileStorage) DeleteDeliveryFileCommandHandler {
	return DeleteDeliveryFileCommandHandler{o: o, storage: storage}
}

func (h DeleteDeliveryFileCommandHandler) Handle(ctx context.Context, c DeleteDeliveryFileCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}

	var removed kernel.FileRef
	_, err := h.o.mutate(ctx, c.Actor(), services.OpDeleteDeliveryFile, byDeliveryFile(c.FileID()),
		func(o *order.Order, now time.Time) error {
			var err error
			removed, err = o.RemoveDeliveryFile(c.FileID(), now)
			return err
		})
	if err != nil {
		return err
	}
	h.o.deleteStored(ctx, h.storage, removed)
	return nil
}
