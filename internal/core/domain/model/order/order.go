package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/model/template"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrderFromTemplate or Restore.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrderFromTemplate or Restore")
)

// Order is the aggregate root of a marketplace transaction between a requester
// and a provider. It owns the contract, the payment ledger, the delivery items,
// the confirmation blocks and the status history, and it is the only place
// where status transitions happen.
//
// Order follows these invariants:
//   - status changes only along the edges of the transition table
//   - every transition runs its gate first and leaves the order untouched when the gate fails
//   - the scheduled payment cards always sum to the price they were scheduled for
//   - sub-records are changed only through Order methods
type Order struct {
	// id is the unique identifier, also rendered as the short code
	id kernel.UUID

	// number is the human-facing order number
	number Number

	name      string
	orderType string

	requesterID kernel.UUID
	providerID  kernel.UUID
	templateID  kernel.UUID

	status Status

	// price is the current agreed or proposed price
	price kernel.Money

	// startingPrice and paymentMethod are copied from the template at creation
	startingPrice kernel.Money
	paymentMethod payment.Method

	contract *contract.Contract
	cards    []*payment.Card
	items    []*delivery.Item
	blocks   []*confirmation.Block
	history  []HistoryRecord

	// deliverables seeds the delivery items on entry to awaiting_payment
	deliverables []string

	// version is the optimistic lock value read from storage
	version int64

	createdAt time.Time
	updatedAt time.Time

	events []Event

	isConstructed bool
}

// NewOrderFromTemplate opens an order in inquiry. The contract is built from the
// template terms and the confirmation blocks are copied; the ledger and the
// delivery items stay empty until their phase is reached.
func NewOrderFromTemplate(
	id kernel.UUID,
	number Number,
	requesterID kernel.UUID,
	tmpl *template.Template,
	name, orderType string,
	now time.Time,
) (*Order, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = tmpl.Name()
	}

	var numberErr error
	if number == "" {
		numberErr = errs.NewValueIsRequiredError("order number")
	}
	var selfErr error
	if requesterID.IsEqual(tmpl.ProviderID()) {
		selfErr = errs.NewValueIsInvalidErrorWithCause("requester", errors.New("provider cannot order from own template"))
	}
	if err := errors.Join(id.Validate(), requesterID.Validate(), numberErr, selfErr); err != nil {
		return nil, err
	}

	c, err := contract.NewContract(kernel.NewUUID(), tmpl.ContractName(), tmpl.ContractDescription(), tmpl.StartingPrice(), tmpl.Clauses())
	if err != nil {
		return nil, err
	}

	blocks := make([]*confirmation.Block, 0, len(tmpl.Blocks()))
	for i, terms := range tmpl.Blocks() {
		b, err := confirmation.NewBlock(kernel.NewUUID(), i, terms)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	o := &Order{
		id:            id,
		number:        number,
		name:          name,
		orderType:     strings.TrimSpace(orderType),
		requesterID:   requesterID,
		providerID:    tmpl.ProviderID(),
		templateID:    tmpl.ID(),
		status:        Inquiry,
		price:         tmpl.StartingPrice(),
		startingPrice: tmpl.StartingPrice(),
		paymentMethod: tmpl.PaymentMethod(),
		contract:      c,
		blocks:        blocks,
		deliverables:  tmpl.Deliverables(),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	o.record(EventOrderCreated, "", now)
	return o, nil
}

// Snapshot carries the persisted state of an order and its sub-records.
type Snapshot struct {
	ID            kernel.UUID
	Number        Number
	Name          string
	Type          string
	RequesterID   kernel.UUID
	ProviderID    kernel.UUID
	TemplateID    kernel.UUID
	Status        Status
	Price         kernel.Money
	StartingPrice kernel.Money
	PaymentMethod payment.Method
	Deliverables  []string
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Contract *contract.Contract
	Cards    []*payment.Card
	Items    []*delivery.Item
	Blocks   []*confirmation.Block
	History  []HistoryRecord
}

// Restore rebuilds an order from storage without re-running business rules.
func Restore(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.RequesterID.Validate(),
		s.ProviderID.Validate(),
		s.Status.Validate(),
		s.PaymentMethod.Validate(),
		s.Contract.Validate(),
	); err != nil {
		return nil, err
	}
	o := &Order{
		id:            s.ID,
		number:        s.Number,
		name:          s.Name,
		orderType:     s.Type,
		requesterID:   s.RequesterID,
		providerID:    s.ProviderID,
		templateID:    s.TemplateID,
		status:        s.Status,
		price:         s.Price,
		startingPrice: s.StartingPrice,
		paymentMethod: s.PaymentMethod,
		deliverables:  slices.Clone(s.Deliverables),
		version:       s.Version,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		contract:      s.Contract,
		cards:         slices.Clone(s.Cards),
		items:         slices.Clone(s.Items),
		blocks:        slices.Clone(s.Blocks),
		history:       slices.Clone(s.History),
		isConstructed: true,
	}
	slices.SortFunc(o.cards, func(a, b *payment.Card) int { return a.Installment() - b.Installment() })
	slices.SortFunc(o.blocks, func(a, b *confirmation.Block) int { return a.Sort() - b.Sort() })
	slices.SortStableFunc(o.history, func(a, b HistoryRecord) int { return a.At.Compare(b.At) })
	return o, nil
}

// Validate reports whether the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID               { return o.id }
func (o *Order) ShortCode() string             { return o.id.ShortCode() }
func (o *Order) Number() Number                { return o.number }
func (o *Order) Name() string                  { return o.name }
func (o *Order) Type() string                  { return o.orderType }
func (o *Order) RequesterID() kernel.UUID      { return o.requesterID }
func (o *Order) ProviderID() kernel.UUID       { return o.providerID }
func (o *Order) TemplateID() kernel.UUID       { return o.templateID }
func (o *Order) Status() Status                { return o.status }
func (o *Order) Price() kernel.Money           { return o.price }
func (o *Order) StartingPrice() kernel.Money   { return o.startingPrice }
func (o *Order) PaymentMethod() payment.Method { return o.paymentMethod }
func (o *Order) Deliverables() []string        { return slices.Clone(o.deliverables) }
func (o *Order) Version() int64                { return o.version }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) UpdatedAt() time.Time          { return o.updatedAt }
func (o *Order) Contract() *contract.Contract  { return o.contract }
func (o *Order) PaymentCards() []*payment.Card { return slices.Clone(o.cards) }
func (o *Order) DeliveryItems() []*delivery.Item {
	return slices.Clone(o.items)
}
func (o *Order) ConfirmationBlocks() []*confirmation.Block {
	return slices.Clone(o.blocks)
}
func (o *Order) History() []HistoryRecord { return slices.Clone(o.history) }

// PartyOf maps a user to their side of the order, PartyNone for outsiders.
func (o *Order) PartyOf(userID kernel.UUID) kernel.Party {
	switch {
	case userID.IsEqual(o.requesterID):
		return kernel.PartyRequester
	case userID.IsEqual(o.providerID):
		return kernel.PartyProvider
	default:
		return kernel.PartyNone
	}
}

// MarkPersisted is called by repositories after a successful write so that a
// second write in the same unit of work checks against the stored version.
func (o *Order) MarkPersisted(version int64) {
	o.version = version
}

// AttachmentRefs lists every stored file the order references, used to clean up
// file storage after a delete.
func (o *Order) AttachmentRefs() []kernel.FileRef {
	var refs []kernel.FileRef
	for _, c := range o.cards {
		for _, ref := range []kernel.FileRef{c.Receipt(), c.Invoice()} {
			if !ref.IsZero() {
				refs = append(refs, ref)
			}
		}
	}
	for _, it := range o.items {
		for _, f := range it.Files() {
			refs = append(refs, f.Ref())
		}
	}
	return refs
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}
