package payment

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrCardIsNotConstructed is returned by Validate for zero-value cards.
var ErrCardIsNotConstructed = errors.New("Card must be created via NewCard constructor")

// Card is one installment of an order's payment ledger.
type Card struct {
	id          kernel.UUID
	installment int
	amount      kernel.Money
	status      Status
	dueDate     *time.Time
	receipt     kernel.FileRef
	invoice     kernel.FileRef
	paidAt      *time.Time
	extra       bool

	isConstructed bool
}

// NewCard builds a pending card. Extra marks cards appended after the schedule was generated.
func NewCard(id kernel.UUID, installment int, amount kernel.Money, dueDate *time.Time, extra bool) (*Card, error) {
	c := &Card{
		status:        Pending,
		dueDate:       dueDate,
		extra:         extra,
		isConstructed: true,
	}
	if err := errors.Join(
		c.setID(id),
		c.setInstallment(installment),
		c.setAmount(amount),
	); err != nil {
		return nil, err
	}
	return c, nil
}

// CardSnapshot carries the persisted state of a card.
type CardSnapshot struct {
	ID          kernel.UUID
	Installment int
	Amount      kernel.Money
	Status      Status
	DueDate     *time.Time
	Receipt     kernel.FileRef
	Invoice     kernel.FileRef
	PaidAt      *time.Time
	Extra       bool
}

// RestoreCard rebuilds a card from storage.
func RestoreCard(s CardSnapshot) (*Card, error) {
	c, err := NewCard(s.ID, s.Installment, s.Amount, s.DueDate, s.Extra)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	c.status = s.Status
	c.receipt = s.Receipt
	c.invoice = s.Invoice
	c.paidAt = s.PaidAt
	return c, nil
}

// Validate reports whether the card was built through a constructor.
func (c *Card) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCardIsNotConstructed
	}
	return nil
}

func (c *Card) ID() kernel.UUID         { return c.id }
func (c *Card) Installment() int        { return c.installment }
func (c *Card) Amount() kernel.Money    { return c.amount }
func (c *Card) Status() Status          { return c.status }
func (c *Card) DueDate() *time.Time     { return c.dueDate }
func (c *Card) Receipt() kernel.FileRef { return c.receipt }
func (c *Card) Invoice() kernel.FileRef { return c.invoice }
func (c *Card) PaidAt() *time.Time      { return c.paidAt }
func (c *Card) IsExtra() bool           { return c.extra }

// ChangeStatus moves the card to target. Only the next status is reachable, and
// moving to Paid requires a receipt to be attached first.
func (c *Card) ChangeStatus(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if c.status.next() != target {
		return errs.NewInvalidTransitionError("payment card", c.status, target)
	}
	if target == Paid {
		if c.receipt.IsZero() {
			return errs.NewIncompletePaymentError(fmt.Sprintf("installment %d has no receipt", c.installment))
		}
		at := now
		c.paidAt = &at
	}
	c.status = target
	return nil
}

// AttachReceipt records proof of payment without changing the status.
// It returns the reference it replaced, if any.
func (c *Card) AttachReceipt(ref kernel.FileRef) (kernel.FileRef, error) {
	if ref.IsZero() {
		return kernel.FileRef{}, errs.NewValueIsRequiredError("receipt")
	}
	prev := c.receipt
	c.receipt = ref
	return prev, nil
}

// AttachInvoice records the provider's invoice without changing the status.
// It returns the reference it replaced, if any.
func (c *Card) AttachInvoice(ref kernel.FileRef) (kernel.FileRef, error) {
	if ref.IsZero() {
		return kernel.FileRef{}, errs.NewValueIsRequiredError("invoice")
	}
	prev := c.invoice
	c.invoice = ref
	return prev, nil
}

func (c *Card) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Card) setInstallment(n int) error {
	if n < 1 {
		return errs.NewValueIsInvalidErrorWithCause("installment", fmt.Errorf("%d is less than 1", n))
	}
	c.installment = n
	return nil
}

func (c *Card) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	c.amount = amount
	return nil
}
