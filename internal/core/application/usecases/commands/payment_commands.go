package commands

import (
	"errors"
	"io"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
		"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
	)
	ErrUploadPaymentDocumentCommandIsNotConstructed = errors.New(
		"UploadPaymentDocumentCommand must be created via NewUploadPaymentDocumentCommand constructor",
	)
	ErrAddPaymentCardCommandIsNotConstructed = errors.New(
		"AddPaymentCardCommand must be created via NewAddPaymentCardCommand constructor",
	)
	ErrAdvancePaidOrdersCommandIsNotConstructed = errors.New(
		"AdvancePaidOrdersCommand must be created via NewAdvancePaidOrdersCommand constructor",
	)
)

// UpdatePaymentStatusCommand moves a payment card forward.
type UpdatePaymentStatusCommand struct {
	target
	status payment.Status
}

func NewUpdatePaymentStatusCommand(actor kernel.Actor, cardID kernel.UUID, status payment.Status) (UpdatePaymentStatusCommand, error) {
	t, err := newTarget(actor, cardID)
	if err = errors.Join(err, status.Validate()); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}
	return UpdatePaymentStatusCommand{target: t, status: status}, nil
}

func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

func (c UpdatePaymentStatusCommand) CardID() kernel.UUID    { return c.id }
func (c UpdatePaymentStatusCommand) Status() payment.Status { return c.status }

// DocumentKind selects the slot of a payment card a document goes to.
type DocumentKind string

const (
	DocumentReceipt DocumentKind = "receipt"
	DocumentInvoice DocumentKind = "invoice"
)

// UploadPaymentDocumentCommand stores a receipt or invoice for a card.
type UploadPaymentDocumentCommand struct {
	target
	kind     DocumentKind
	fileName string
	content  io.Reader
}

func NewUploadPaymentDocumentCommand(
	actor kernel.Actor,
	cardID kernel.UUID,
	kind DocumentKind,
	fileName string,
	content io.Reader,
) (UploadPaymentDocumentCommand, error) {
	t, err := newTarget(actor, cardID)
	if kind != DocumentReceipt && kind != DocumentInvoice {
		err = errors.Join(err, errs.NewValueIsInvalidError("document kind"))
	}
	if content == nil {
		err = errors.Join(err, errs.NewValueIsRequiredError("file"))
	}
	if err != nil {
		return UploadPaymentDocumentCommand{}, err
	}
	return UploadPaymentDocumentCommand{target: t, kind: kind, fileName: strings.TrimSpace(fileName), content: content}, nil
}

func (c UploadPaymentDocumentCommand) Validate() error {
	return c.guard.Validate(ErrUploadPaymentDocumentCommandIsNotConstructed)
}

func (c UploadPaymentDocumentCommand) CardID() kernel.UUID { return c.id }
func (c UploadPaymentDocumentCommand) Kind() DocumentKind  { return c.kind }
func (c UploadPaymentDocumentCommand) FileName() string    { return c.fileName }
func (c UploadPaymentDocumentCommand) Content() io.Reader  { return c.content }

// AddPaymentCardCommand appends an extra card to the ledger.
type AddPaymentCardCommand struct {
	target
	amount  kernel.Money
	dueDate *time.Time
}

func NewAddPaymentCardCommand(actor kernel.Actor, orderID kernel.UUID, amount kernel.Money, dueDate *time.Time) (AddPaymentCardCommand, error) {
	t, err := newTarget(actor, orderID)
	if !amount.IsPositive() {
		err = errors.Join(err, errs.NewValueIsInvalidError("amount"))
	}
	if err != nil {
		return AddPaymentCardCommand{}, err
	}
	return AddPaymentCardCommand{target: t, amount: amount, dueDate: dueDate}, nil
}

func (c AddPaymentCardCommand) Validate() error {
	return c.guard.Validate(ErrAddPaymentCardCommandIsNotConstructed)
}

func (c AddPaymentCardCommand) OrderID() kernel.UUID { return c.id }
func (c AddPaymentCardCommand) Amount() kernel.Money { return c.amount }
func (c AddPaymentCardCommand) DueDate() *time.Time  { return c.dueDate }

// AdvancePaidOrdersCommand moves every order whose ledger is settled out of
// awaiting_payment. It is issued by the payment poll job.
type AdvancePaidOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewAdvancePaidOrdersCommand() AdvancePaidOrdersCommand {
	return AdvancePaidOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c AdvancePaidOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAdvancePaidOrdersCommandIsNotConstructed)
}
