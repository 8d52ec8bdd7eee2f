package order

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ConfirmationBlock finds a block of the order.
func (o *Order) ConfirmationBlock(blockID kernel.UUID) (*confirmation.Block, error) {
	for _, b := range o.blocks {
		if b.ID().IsEqual(blockID) {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("confirmation block", blockID.String())
}

// SelectConfirmationItem selects a list item and reprices the order as the
// starting price plus every selected unit price × quantity.
func (o *Order) SelectConfirmationItem(blockID, itemID kernel.UUID, now time.Time) error {
	b, err := o.openBlock(blockID)
	if err != nil {
		return err
	}
	if err = b.Select(itemID); err != nil {
		return err
	}
	price := o.startingPrice.Add(confirmation.SelectionTotal(o.blocks))
	if !price.Equal(o.price) {
		o.setPrice(price)
		o.record(EventPriceChanged, price.String(), now)
	}
	o.touch(now)
	o.record(EventConfirmationAnswered, b.Name(), now)
	return nil
}

// AnswerConfirmation stores the answer of a text block.
func (o *Order) AnswerConfirmation(blockID kernel.UUID, content string, now time.Time) error {
	b, err := o.openBlock(blockID)
	if err != nil {
		return err
	}
	if err = b.Answer(content); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventConfirmationAnswered, b.Name(), now)
	return nil
}

func (o *Order) openBlock(blockID kernel.UUID) (*confirmation.Block, error) {
	if o.status != Inquiry {
		return nil, errs.NewInvalidStateError("confirmation block", fmt.Sprintf("cannot be answered once the order is %s", o.status))
	}
	return o.ConfirmationBlock(blockID)
}
