package order

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"
)

// SignContract records the signature of party. When both parties have signed the
// contract is executed and the order moves on to awaiting_payment. A contract
// reopened by an approved change is signed again in awaiting_payment.
func (o *Order) SignContract(party kernel.Party, signatureURL string, by kernel.Actor, now time.Time) error {
	if o.contract == nil {
		return errs.NewInvalidStateError("order", "has no contract")
	}
	if o.status != QuoteAccept && o.status != AwaitingPayment {
		return errs.NewInvalidStateError("order", fmt.Sprintf("contract can only be signed in %s, order is %s", QuoteAccept, o.status))
	}
	if err := o.contract.Sign(party, signatureURL, now); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventContractSigned, string(party), now)
	if o.contract.IsExecuted() {
		o.record(EventContractExecuted, "", now)
	}
	o.advance(by, now)
	return nil
}

// RequestContractChange clears both signatures and parks the proposal until the
// counterparty resolves it.
func (o *Order) RequestContractChange(party kernel.Party, reason, proposedText string, now time.Time) error {
	if err := o.checkContractEditable(); err != nil {
		return err
	}
	if err := o.contract.RequestChange(party, reason, proposedText, now); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventContractChangeRequested, reason, now)
	return nil
}

// ApproveContractChange applies the pending proposal. Both parties must sign again.
func (o *Order) ApproveContractChange(party kernel.Party, now time.Time) error {
	if err := o.checkContractEditable(); err != nil {
		return err
	}
	if err := o.contract.ApproveChange(party, now); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventContractChangeResolved, "approved", now)
	return nil
}

// RejectContractChange discards the pending proposal and restores the signatures
// taken away by the request.
func (o *Order) RejectContractChange(party kernel.Party, by kernel.Actor, now time.Time) error {
	if err := o.checkContractEditable(); err != nil {
		return err
	}
	if err := o.contract.RejectChange(party, now); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventContractChangeResolved, "rejected", now)
	o.advance(by, now)
	return nil
}

func (o *Order) AddContractClause(name, content string, now time.Time) (*contract.Clause, error) {
	if err := o.checkContractEditable(); err != nil {
		return nil, err
	}
	cl, err := o.contract.AddClause(kernel.NewUUID(), name, content, now)
	if err != nil {
		return nil, err
	}
	o.touch(now)
	o.record(EventContractUpdated, "clause added", now)
	return cl, nil
}

func (o *Order) UpdateContractClause(clauseID kernel.UUID, name, content string, now time.Time) error {
	if err := o.checkContractEditable(); err != nil {
		return err
	}
	if err := o.contract.UpdateClause(clauseID, name, content, now); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventContractUpdated, "clause updated", now)
	return nil
}

func (o *Order) DeleteContractClause(clauseID kernel.UUID, now time.Time) error {
	if err := o.checkContractEditable(); err != nil {
		return err
	}
	if err := o.contract.DeleteClause(clauseID, now); err != nil {
		return err
	}
	o.touch(now)
	o.record(EventContractUpdated, "clause deleted", now)
	return nil
}

// checkContractEditable allows contract edits from inquiry through quote_accept,
// and in awaiting_payment until the first card leaves Pending.
func (o *Order) checkContractEditable() error {
	if o.contract == nil {
		return errs.NewInvalidStateError("order", "has no contract")
	}
	if o.status == AwaitingPayment {
		if !payment.AllPending(o.cards) {
			return errs.NewInvalidStateError("contract", "cannot change once a payment has been made")
		}
		return nil
	}
	if !o.status.in(Inquiry, QuoteRequest, QuoteSent, QuoteAccept) {
		return errs.NewInvalidStateError("contract", fmt.Sprintf("cannot change once the order is %s", o.status))
	}
	return nil
}
