package order

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// DeliveryItem finds an item of the order.
func (o *Order) DeliveryItem(itemID kernel.UUID) (*delivery.Item, error) {
	for _, it := range o.items {
		if it.ID().IsEqual(itemID) {
			return it, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("delivery item", itemID.String())
}

// DeliveryItemOfFile finds the item a file is attached to.
func (o *Order) DeliveryItemOfFile(fileID kernel.UUID) (*delivery.Item, error) {
	for _, it := range o.items {
		if it.HasFile(fileID) {
			return it, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("delivery file", fileID.String())
}

func (o *Order) AddDeliveryItem(description string, now time.Time) (*delivery.Item, error) {
	if err := o.checkDeliveryWindow(); err != nil {
		return nil, err
	}
	it, err := delivery.NewItem(kernel.NewUUID(), description, now)
	if err != nil {
		return nil, err
	}
	o.items = append(o.items, it)
	o.touch(now)
	o.record(EventDeliveryItemAdded, description, now)
	return it, nil
}

func (o *Order) AttachDeliveryFile(itemID kernel.UUID, ref kernel.FileRef, now time.Time) (*delivery.File, error) {
	if err := o.checkDeliveryWindow(); err != nil {
		return nil, err
	}
	it, err := o.DeliveryItem(itemID)
	if err != nil {
		return nil, err
	}
	f, err := delivery.NewFile(kernel.NewUUID(), ref, now)
	if err != nil {
		return nil, err
	}
	if err = it.AttachFile(f, now); err != nil {
		return nil, err
	}
	o.touch(now)
	o.record(EventDeliveryFileAttached, ref.Name(), now)
	return f, nil
}

// RemoveDeliveryFile detaches a file and returns its reference so the caller can
// delete the stored bytes.
func (o *Order) RemoveDeliveryFile(fileID kernel.UUID, now time.Time) (kernel.FileRef, error) {
	if err := o.checkDeliveryWindow(); err != nil {
		return kernel.FileRef{}, err
	}
	it, err := o.DeliveryItemOfFile(fileID)
	if err != nil {
		return kernel.FileRef{}, err
	}
	ref, err := it.RemoveFile(fileID, now)
	if err != nil {
		return kernel.FileRef{}, err
	}
	o.touch(now)
	o.record(EventDeliveryFileRemoved, ref.Name(), now)
	return ref, nil
}

// MarkDelivered submits an item. The first submission in in_progress, or the last
// redelivery in in_revision, moves the order to delivered.
func (o *Order) MarkDelivered(itemID kernel.UUID, by kernel.Actor, now time.Time) error {
	return o.changeDeliveryStatus(itemID, by, now, func(it *delivery.Item) error {
		return it.MarkDelivered(now)
	})
}

// RequestModification sends an item back to the provider and the order to in_revision.
func (o *Order) RequestModification(itemID kernel.UUID, comment string, by kernel.Actor, now time.Time) error {
	return o.changeDeliveryStatus(itemID, by, now, func(it *delivery.Item) error {
		return it.RequestModification(comment, now)
	})
}

// AcceptDelivery accepts an item. Completion stays an explicit operation.
func (o *Order) AcceptDelivery(itemID kernel.UUID, isFinal bool, by kernel.Actor, now time.Time) error {
	return o.changeDeliveryStatus(itemID, by, now, func(it *delivery.Item) error {
		return it.Accept(isFinal, now)
	})
}

func (o *Order) changeDeliveryStatus(itemID kernel.UUID, by kernel.Actor, now time.Time, change func(*delivery.Item) error) error {
	if !o.status.in(InProgress, Delivered, InRevision) {
		return errs.NewInvalidStateError("order", fmt.Sprintf("cannot change delivery status while %s", o.status))
	}
	it, err := o.DeliveryItem(itemID)
	if err != nil {
		return err
	}
	if err = change(it); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventDeliveryStatusChanged, fmt.Sprintf("%s is %s", it.Description(), it.Status()), now)
	o.advance(by, now)
	return nil
}

// checkDeliveryWindow allows item and file edits from awaiting_payment until the order ends.
func (o *Order) checkDeliveryWindow() error {
	if !o.status.in(AwaitingPayment, InProgress, Delivered, InRevision) {
		return errs.NewInvalidStateError("order", fmt.Sprintf("has no open delivery while %s", o.status))
	}
	return nil
}
