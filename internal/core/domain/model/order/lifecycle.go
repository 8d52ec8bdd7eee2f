package order

import (
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"
)

const reasonAutomatic = "automatic"

// RequestQuote moves inquiry to quote_request once every confirmation block is answered.
func (o *Order) RequestQuote(by kernel.Actor, now time.Time) error {
	return o.transitionTo(QuoteRequest, "quote requested", nil, by, now)
}

// SendQuote proposes price and moves quote_request to quote_sent. The contract
// price mirrors the proposal.
func (o *Order) SendQuote(price kernel.Money, by kernel.Actor, now time.Time) error {
	if err := payment.CheckPrice(o.paymentMethod, price); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(QuoteSent) {
		return errs.NewInvalidTransitionError("order", o.status, QuoteSent)
	}
	prev := o.price
	o.setPrice(price)
	if err := o.transitionTo(QuoteSent, "quote sent", &price, by, now); err != nil {
		o.setPrice(prev)
		return err
	}
	return nil
}

// AcceptQuote locks the proposed price and opens the payment ledger.
func (o *Order) AcceptQuote(by kernel.Actor, now time.Time) error {
	price := o.price
	return o.transitionTo(QuoteAccept, "quote accepted", &price, by, now)
}

// RejectQuote sends the order back to quote_request for a new proposal.
func (o *Order) RejectQuote(reason string, by kernel.Actor, now time.Time) error {
	if reason == "" {
		reason = "quote rejected"
	}
	return o.transitionTo(QuoteRequest, reason, nil, by, now)
}

// UpdateStatus is the administrative override. The target must be one edge away
// and its gate and side effects run exactly as for the dedicated operation.
func (o *Order) UpdateStatus(target Status, reason string, by kernel.Actor, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if reason == "" {
		reason = "status updated"
	}
	var price *kernel.Money
	if target == QuoteSent || target == QuoteAccept {
		p := o.price
		price = &p
	}
	if err := o.transitionTo(target, reason, price, by, now); err != nil {
		return err
	}
	o.advance(by, now)
	return nil
}

// Complete closes an order whose deliveries are all accepted.
func (o *Order) Complete(by kernel.Actor, now time.Time) error {
	return o.transitionTo(Completed, "completed", nil, by, now)
}

// Cancel stops the order from any non-terminal status.
func (o *Order) Cancel(reason string, by kernel.Actor, now time.Time) error {
	if reason == "" {
		reason = "cancelled"
	}
	return o.transitionTo(Cancelled, reason, nil, by, now)
}

// UpdatePrice changes the price while no payment has been made. A schedule that
// already exists is regenerated for the new price.
func (o *Order) UpdatePrice(price kernel.Money, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", fmt.Sprintf("is %s", o.status))
	}
	if err := payment.CheckPrice(o.paymentMethod, price); err != nil {
		return err
	}
	if len(o.cards) > 0 {
		cards, err := payment.Reschedule(o.paymentMethod, price, o.cards)
		if err != nil {
			return err
		}
		o.cards = cards
	}
	o.setPrice(price)
	o.touch(now)
	o.record(EventPriceChanged, price.String(), now)
	return nil
}

// Advance follows every automatic edge whose condition holds. It reports whether
// the status changed.
func (o *Order) Advance(by kernel.Actor, now time.Time) bool {
	from := o.status
	o.advance(by, now)
	return o.status != from
}

func (o *Order) advance(by kernel.Actor, now time.Time) {
	for {
		target, ok := o.automaticTarget()
		if !ok {
			return
		}
		if err := o.transitionTo(target, reasonAutomatic, nil, by, now); err != nil {
			return
		}
	}
}

// automaticTarget returns the edge the order takes on its own from its current status.
func (o *Order) automaticTarget() (Status, bool) {
	//nolint:exhaustive // other statuses only move on explicit operations
	switch o.status {
	case QuoteAccept:
		return AwaitingPayment, o.contract.IsExecuted()
	case AwaitingPayment:
		return InProgress, o.contract.IsExecuted() && payment.AllSettled(o.cards)
	case InProgress:
		return Delivered, o.hasSubmittedDelivery()
	case Delivered:
		return InRevision, delivery.CountIn(o.items, delivery.ModificationRequested) > 0
	case InRevision:
		return Delivered, o.hasSubmittedDelivery()
	}
	return Unknown, false
}

func (o *Order) hasSubmittedDelivery() bool {
	submitted := delivery.CountIn(o.items, delivery.Delivered) + delivery.CountIn(o.items, delivery.Accepted)
	return submitted > 0 && delivery.CountIn(o.items, delivery.ModificationRequested) == 0
}

// transitionTo is the single place where the status changes. It checks the edge,
// runs the gate of the target, applies the side effects and appends history.
func (o *Order) transitionTo(target Status, reason string, price *kernel.Money, by kernel.Actor, now time.Time) error {
	if !o.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError("order", o.status, target)
	}
	if err := o.gate(target); err != nil {
		return err
	}
	if err := o.enter(target, now); err != nil {
		return err
	}

	from := o.status
	o.status = target
	o.history = append(o.history, HistoryRecord{
		ID:        kernel.NewUUID(),
		From:      from,
		To:        target,
		Reason:    reason,
		Price:     price,
		ActorID:   by.UserID(),
		ActorRole: by.Role(),
		At:        now,
	})
	o.touch(now)

	o.record(EventStatusChanged, fmt.Sprintf("%s to %s", from, target), now)
	if target == Cancelled {
		o.record(EventOrderCancelled, reason, now)
	}
	return nil
}

// gate checks the precondition of entering target without changing anything.
func (o *Order) gate(target Status) error {
	//nolint:exhaustive // remaining targets have no precondition
	switch target {
	case QuoteRequest:
		if o.status == Inquiry && !confirmation.AllAnswered(o.blocks) {
			return errs.NewIncompleteConfirmationError(
				fmt.Sprintf("%d confirmation blocks unanswered", confirmation.Unanswered(o.blocks)))
		}
	case QuoteSent, QuoteAccept:
		if !o.price.IsPositive() {
			return errs.NewInvalidStateError("order", "has no price to quote")
		}
	case AwaitingPayment:
		if !o.contract.IsExecuted() {
			return errs.NewInvalidStateError("contract", "is not executed")
		}
	case InProgress:
		if !o.contract.IsExecuted() {
			return errs.NewInvalidStateError("contract", "is not executed")
		}
		if !payment.AllSettled(o.cards) {
			return errs.NewIncompletePaymentError(
				fmt.Sprintf("%d of %d payment cards unsettled", payment.Unsettled(o.cards), len(o.cards)))
		}
	case Delivered:
		if !o.hasSubmittedDelivery() {
			return errs.NewIncompleteDeliveryError("no delivered item or a modification is still requested")
		}
	case InRevision:
		if delivery.CountIn(o.items, delivery.ModificationRequested) == 0 {
			return errs.NewInvalidStateError("order", "has no delivery item awaiting modification")
		}
	case Completed:
		if !delivery.AllAccepted(o.items) {
			return errs.NewIncompleteDeliveryError(
				fmt.Sprintf("%d of %d delivery items accepted, final item required",
					delivery.CountIn(o.items, delivery.Accepted), len(o.items)))
		}
	}
	return nil
}

// enter applies the side effects of entering target. It fails before mutating.
func (o *Order) enter(target Status, now time.Time) error {
	//nolint:exhaustive // remaining targets have no side effect
	switch target {
	case QuoteAccept:
		if len(o.cards) > 0 {
			return nil
		}
		cards, err := payment.Schedule(o.paymentMethod, o.price)
		if err != nil {
			return err
		}
		o.cards = cards
		o.contract.SetPrice(o.price)
	case AwaitingPayment:
		if len(o.items) > 0 {
			return nil
		}
		items := make([]*delivery.Item, 0, len(o.deliverables))
		for _, d := range o.deliverables {
			it, err := delivery.NewItem(kernel.NewUUID(), d, now)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		o.items = items
	}
	return nil
}

func (o *Order) setPrice(price kernel.Money) {
	o.price = price
	o.contract.SetPrice(price)
}
