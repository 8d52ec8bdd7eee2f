package contract

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrContractIsNotConstructed is returned by Validate for zero-value contracts.
var ErrContractIsNotConstructed = errors.New("Contract must be created via NewContract constructor")

// Signature is one party's signature slot.
type Signature struct {
	Signed   bool
	URL      string
	SignedAt *time.Time
}

// ChangeRequest is a pending amendment proposed by one party.
type ChangeRequest struct {
	Reason       string
	ProposedText string
	RequestedBy  kernel.Party
	RequestedAt  time.Time
}

// Contract is the dual-signature agreement attached one-to-one to an order.
//
// Invariants:
//   - Executed holds exactly when both signature flags are set and no change is pending
//   - signing as one party never touches the other party's slot
//   - a change request clears both signatures; approving it keeps them cleared,
//     rejecting it restores the slots captured when the change was requested
//   - clause sort indices are always 0..n-1
type Contract struct {
	id          kernel.UUID
	name        string
	description string
	price       kernel.Money
	requester   Signature
	provider    Signature
	revisedAt   *time.Time
	status      Status
	clauses     []*Clause

	pendingChange *ChangeRequest
	// snapshot holds the signatures taken when pendingChange was created.
	snapshot *[2]Signature

	isConstructed bool
}

// NewContract builds a pending, unsigned contract from template terms.
func NewContract(id kernel.UUID, name, description string, price kernel.Money, terms []ClauseTerms) (*Contract, error) {
	c := &Contract{
		name:          name,
		description:   description,
		price:         price,
		status:        Pending,
		isConstructed: true,
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	c.id = id

	for i, t := range terms {
		cl, err := newClause(kernel.NewUUID(), t.Name, t.Content, i)
		if err != nil {
			return nil, fmt.Errorf("clause %d: %w", i, err)
		}
		c.clauses = append(c.clauses, cl)
	}
	return c, nil
}

// Snapshot carries the persisted state of a contract.
type Snapshot struct {
	ID                kernel.UUID
	Name              string
	Description       string
	Price             kernel.Money
	Requester         Signature
	Provider          Signature
	RevisedAt         *time.Time
	Status            Status
	Clauses           []*Clause
	PendingChange     *ChangeRequest
	RequesterSnapshot *Signature
	ProviderSnapshot  *Signature
}

// Restore rebuilds a contract from storage without re-running business rules.
func Restore(s Snapshot) (*Contract, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	c := &Contract{
		id:            s.ID,
		name:          s.Name,
		description:   s.Description,
		price:         s.Price,
		requester:     s.Requester,
		provider:      s.Provider,
		revisedAt:     s.RevisedAt,
		status:        s.Status,
		clauses:       slices.Clone(s.Clauses),
		pendingChange: s.PendingChange,
		isConstructed: true,
	}
	if s.RequesterSnapshot != nil && s.ProviderSnapshot != nil {
		c.snapshot = &[2]Signature{*s.RequesterSnapshot, *s.ProviderSnapshot}
	}
	slices.SortFunc(c.clauses, func(a, b *Clause) int { return a.sort - b.sort })
	return c, nil
}

// Validate reports whether the contract was built through a constructor.
func (c *Contract) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrContractIsNotConstructed
	}
	return nil
}

func (c *Contract) ID() kernel.UUID               { return c.id }
func (c *Contract) Name() string                  { return c.name }
func (c *Contract) Description() string           { return c.description }
func (c *Contract) Price() kernel.Money           { return c.price }
func (c *Contract) RequesterSignature() Signature { return c.requester }
func (c *Contract) ProviderSignature() Signature  { return c.provider }
func (c *Contract) RevisedAt() *time.Time         { return c.revisedAt }
func (c *Contract) Status() Status                { return c.status }
func (c *Contract) PendingChange() *ChangeRequest { return c.pendingChange }
func (c *Contract) IsExecuted() bool              { return c.status == Executed }
func (c *Contract) Clauses() []*Clause            { return slices.Clone(c.clauses) }

// SignatureSnapshot returns the slots captured by the pending change request, if any.
func (c *Contract) SignatureSnapshot() (requester, provider *Signature) {
	if c.snapshot == nil {
		return nil, nil
	}
	r, p := c.snapshot[0], c.snapshot[1]
	return &r, &p
}

// SetPrice mirrors the order price onto the contract.
func (c *Contract) SetPrice(price kernel.Money) {
	c.price = price
}

// Sign fills the slot for party. When both slots are filled the contract is executed.
func (c *Contract) Sign(party kernel.Party, url string, now time.Time) error {
	if c.status == ChangeRequested {
		return errs.NewInvalidStateError("contract", "has a pending change request")
	}
	slot, err := c.slot(party)
	if err != nil {
		return err
	}
	if slot.Signed {
		return errs.NewInvalidStateError("contract", fmt.Sprintf("is already signed by the %s", party))
	}

	at := now
	*slot = Signature{Signed: true, URL: url, SignedAt: &at}
	c.reevaluate(now)
	return nil
}

// RequestChange records an amendment proposed by party and clears both signatures.
func (c *Contract) RequestChange(party kernel.Party, reason, proposedText string, now time.Time) error {
	if c.status == ChangeRequested {
		return errs.NewInvalidStateError("contract", "already has a pending change request")
	}
	if _, err := c.slot(party); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.snapshot = &[2]Signature{c.requester, c.provider}
	c.pendingChange = &ChangeRequest{
		Reason:       reason,
		ProposedText: proposedText,
		RequestedBy:  party,
		RequestedAt:  now,
	}
	c.requester = Signature{}
	c.provider = Signature{}
	c.status = ChangeRequested
	return nil
}

// ApproveChange applies the proposed text. Both parties must sign again.
func (c *Contract) ApproveChange(party kernel.Party, now time.Time) error {
	if err := c.checkResolver(party); err != nil {
		return err
	}
	if c.pendingChange.ProposedText != "" {
		c.description = c.pendingChange.ProposedText
	}
	c.pendingChange = nil
	c.snapshot = nil
	c.status = Pending
	at := now
	c.revisedAt = &at
	return nil
}

// RejectChange discards the proposal. If both parties had signed before the
// request, the executed state comes back; otherwise the contract stays unsigned.
func (c *Contract) RejectChange(party kernel.Party, now time.Time) error {
	if err := c.checkResolver(party); err != nil {
		return err
	}
	if c.snapshot != nil && c.snapshot[0].Signed && c.snapshot[1].Signed {
		c.requester, c.provider = c.snapshot[0], c.snapshot[1]
	}
	c.pendingChange = nil
	c.snapshot = nil
	c.status = Pending
	c.reevaluate(now)
	return nil
}

// AddClause appends a clause at the end of the contract.
func (c *Contract) AddClause(id kernel.UUID, name, content string, now time.Time) (*Clause, error) {
	if err := c.checkEditable(); err != nil {
		return nil, err
	}
	cl, err := newClause(id, name, content, len(c.clauses))
	if err != nil {
		return nil, err
	}
	c.clauses = append(c.clauses, cl)
	c.touch(now)
	return cl, nil
}

// UpdateClause replaces the name and content of a clause.
func (c *Contract) UpdateClause(id kernel.UUID, name, content string, now time.Time) error {
	if err := c.checkEditable(); err != nil {
		return err
	}
	idx := c.clauseIndex(id)
	if idx < 0 {
		return errs.NewObjectNotFoundError("contract clause", id.String())
	}
	updated, err := newClause(id, name, content, idx)
	if err != nil {
		return err
	}
	c.clauses[idx] = updated
	c.touch(now)
	return nil
}

// DeleteClause removes a clause and reindexes the remaining ones.
func (c *Contract) DeleteClause(id kernel.UUID, now time.Time) error {
	if err := c.checkEditable(); err != nil {
		return err
	}
	idx := c.clauseIndex(id)
	if idx < 0 {
		return errs.NewObjectNotFoundError("contract clause", id.String())
	}
	c.clauses = slices.Delete(c.clauses, idx, idx+1)
	for i, cl := range c.clauses {
		cl.sort = i
	}
	c.touch(now)
	return nil
}

func (c *Contract) slot(party kernel.Party) (*Signature, error) {
	switch party {
	case kernel.PartyRequester:
		return &c.requester, nil
	case kernel.PartyProvider:
		return &c.provider, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%q cannot sign a contract", party))
	}
}

func (c *Contract) checkResolver(party kernel.Party) error {
	if c.status != ChangeRequested || c.pendingChange == nil {
		return errs.NewInvalidStateError("contract", "has no pending change request")
	}
	if party != c.pendingChange.RequestedBy.Counterparty() {
		return errs.NewForbiddenError(string(party), "resolve a change requested by the "+string(c.pendingChange.RequestedBy))
	}
	return nil
}

func (c *Contract) checkEditable() error {
	if c.status == ChangeRequested {
		return errs.NewInvalidStateError("contract", "has a pending change request")
	}
	return nil
}

// touch clears signatures after the text changed.
func (c *Contract) touch(now time.Time) {
	c.requester = Signature{}
	c.provider = Signature{}
	c.status = Pending
	at := now
	c.revisedAt = &at
}

func (c *Contract) reevaluate(now time.Time) {
	if c.requester.Signed && c.provider.Signed {
		if c.status != Executed {
			at := now
			c.revisedAt = &at
		}
		c.status = Executed
		return
	}
	c.status = Pending
}

func (c *Contract) clauseIndex(id kernel.UUID) int {
	return slices.IndexFunc(c.clauses, func(cl *Clause) bool { return cl.id.IsEqual(id) })
}
