package commands

import (
	"errors"
	"io"
	"strings"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	ErrAddDeliveryItemCommandIsNotConstructed = errors.New(
		"AddDeliveryItemCommand must be created via NewAddDeliveryItemCommand constructor",
	)
	ErrUploadDeliveryFileCommandIsNotConstructed = errors.New(
		"UploadDeliveryFileCommand must be created via NewUploadDeliveryFileCommand constructor",
	)
	ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
		"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
	)
	ErrDeleteDeliveryFileCommandIsNotConstructed = errors.New(
		"DeleteDeliveryFileCommand must be created via NewDeleteDeliveryFileCommand constructor",
	)
)

// AddDeliveryItemCommand adds a deliverable to an order.
type AddDeliveryItemCommand struct {
	target
	description string
}

func NewAddDeliveryItemCommand(actor kernel.Actor, orderID kernel.UUID, description string) (AddDeliveryItemCommand, error) {
	t, err := newTarget(actor, orderID)
	description = strings.TrimSpace(description)
	if description == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("description"))
	}
	if err != nil {
		return AddDeliveryItemCommand{}, err
	}
	return AddDeliveryItemCommand{target: t, description: description}, nil
}

func (c AddDeliveryItemCommand) Validate() error {
	return c.guard.Validate(ErrAddDeliveryItemCommandIsNotConstructed)
}

func (c AddDeliveryItemCommand) OrderID() kernel.UUID { return c.id }
func (c AddDeliveryItemCommand) Description() string  { return c.description }

// UploadDeliveryFileCommand attaches a file to a delivery item.
type UploadDeliveryFileCommand struct {
	target
	fileName string
	content  io.Reader
}

func NewUploadDeliveryFileCommand(actor kernel.Actor, itemID kernel.UUID, fileName string, content io.Reader) (UploadDeliveryFileCommand, error) {
	t, err := newTarget(actor, itemID)
	if content == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("file"))
	}
	if err != nil {
		return UploadDeliveryFileCommand{}, err
	}
	return UploadDeliveryFileCommand{target: t, fileName: strings.TrimSpace(fileName), content: content}, nil
}

func (c UploadDeliveryFileCommand) Validate() error {
	return c.guard.Validate(ErrUploadDeliveryFileCommandIsNotConstructed)
}

func (c UploadDeliveryFileCommand) ItemID() kernel.UUID { return c.id }
func (c UploadDeliveryFileCommand) FileName() string    { return c.fileName }
func (c UploadDeliveryFileCommand) Content() io.Reader  { return c.content }

// UpdateDeliveryStatusCommand submits, sends back or accepts a delivery item.
// Comment is required for ModificationRequested; IsFinal applies to Accepted.
type UpdateDeliveryStatusCommand struct {
	target
	status  delivery.Status
	comment string
	isFinal bool
}

func NewUpdateDeliveryStatusCommand(
	actor kernel.Actor,
	itemID kernel.UUID,
	status delivery.Status,
	comment string,
	isFinal bool,
) (UpdateDeliveryStatusCommand, error) {
	t, err := newTarget(actor, itemID)
	if status == delivery.Pending {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("status", errors.New("an item cannot be set back to pending")))
	} else {
		err = errors.Join(err, status.Validate())
	}
	if status == delivery.ModificationRequested && strings.TrimSpace(comment) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("comment"))
	}
	if err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	return UpdateDeliveryStatusCommand{target: t, status: status, comment: comment, isFinal: isFinal}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) ItemID() kernel.UUID     { return c.id }
func (c UpdateDeliveryStatusCommand) Status() delivery.Status { return c.status }
func (c UpdateDeliveryStatusCommand) Comment() string         { return c.comment }
func (c UpdateDeliveryStatusCommand) IsFinal() bool           { return c.isFinal }

// DeleteDeliveryFileCommand detaches a file and deletes its bytes.
type DeleteDeliveryFileCommand struct{ target }

func NewDeleteDeliveryFileCommand(actor kernel.Actor, fileID kernel.UUID) (DeleteDeliveryFileCommand, error) {
	t, err := newTarget(actor, fileID)
	return DeleteDeliveryFileCommand{t}, err
}

func (c DeleteDeliveryFileCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryFileCommandIsNotConstructed)
}

func (c DeleteDeliveryFileCommand) FileID() kernel.UUID { return c.id }
