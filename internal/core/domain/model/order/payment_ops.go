package order

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"
)

// PaymentCard finds a card of the ledger.
func (o *Order) PaymentCard(cardID kernel.UUID) (*payment.Card, error) {
	for _, c := range o.cards {
		if c.ID().IsEqual(cardID) {
			return c, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("payment card", cardID.String())
}

// UpdatePaymentStatus moves a card forward. Settling the last card of the ledger
// in awaiting_payment starts the work.
func (o *Order) UpdatePaymentStatus(cardID kernel.UUID, status payment.Status, by kernel.Actor, now time.Time) error {
	if err := o.checkPaymentWindow(); err != nil {
		return err
	}
	if o.status == AwaitingPayment && !o.contract.IsExecuted() {
		return errs.NewInvalidStateError("contract", "must be signed again before payments are recorded")
	}
	c, err := o.PaymentCard(cardID)
	if err != nil {
		return err
	}
	if err = c.ChangeStatus(status, now); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventPaymentStatusChanged, fmt.Sprintf("installment %d is %s", c.Installment(), status), now)
	o.advance(by, now)
	return nil
}

// AttachPaymentReceipt stores the receipt reference and returns the one it replaced.
func (o *Order) AttachPaymentReceipt(cardID kernel.UUID, ref kernel.FileRef, now time.Time) (kernel.FileRef, error) {
	return o.attachPaymentDocument(cardID, now, "receipt", func(c *payment.Card) (kernel.FileRef, error) {
		return c.AttachReceipt(ref)
	})
}

// AttachPaymentInvoice stores the invoice reference and returns the one it replaced.
func (o *Order) AttachPaymentInvoice(cardID kernel.UUID, ref kernel.FileRef, now time.Time) (kernel.FileRef, error) {
	return o.attachPaymentDocument(cardID, now, "invoice", func(c *payment.Card) (kernel.FileRef, error) {
		return c.AttachInvoice(ref)
	})
}

func (o *Order) attachPaymentDocument(
	cardID kernel.UUID,
	now time.Time,
	kind string,
	attach func(*payment.Card) (kernel.FileRef, error),
) (kernel.FileRef, error) {
	if err := o.checkPaymentWindow(); err != nil {
		return kernel.FileRef{}, err
	}
	c, err := o.PaymentCard(cardID)
	if err != nil {
		return kernel.FileRef{}, err
	}
	prev, err := attach(c)
	if err != nil {
		return kernel.FileRef{}, err
	}
	o.touch(now)
	o.record(EventPaymentDocumentAttached, fmt.Sprintf("%s for installment %d", kind, c.Installment()), now)
	return prev, nil
}

// AddPaymentCard appends an extra card outside the payment method schedule.
func (o *Order) AddPaymentCard(amount kernel.Money, dueDate *time.Time, now time.Time) (*payment.Card, error) {
	if err := o.checkPaymentWindow(); err != nil {
		return nil, err
	}
	c, err := payment.NewCard(kernel.NewUUID(), payment.NextInstallment(o.cards), amount, dueDate, true)
	if err != nil {
		return nil, err
	}
	o.cards = append(o.cards, c)
	o.touch(now)
	o.record(EventPaymentCardAdded, amount.String(), now)
	return c, nil
}

// checkPaymentWindow allows ledger changes from quote_accept until the order ends.
func (o *Order) checkPaymentWindow() error {
	if !o.status.in(QuoteAccept, AwaitingPayment, InProgress, Delivered, InRevision) {
		return errs.NewInvalidStateError("order", fmt.Sprintf("has no open payment ledger while %s", o.status))
	}
	return nil
}
