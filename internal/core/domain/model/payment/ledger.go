package payment

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Schedule splits price into the installment cards of method.
//
// Every installment except the last is price × ratio rounded half-up to two
// digits; the last is price minus the running sum, so the cards always add up
// to price exactly.
func Schedule(method Method, price kernel.Money) ([]*Card, error) {
	amounts, err := split(method, price)
	if err != nil {
		return nil, err
	}

	cards := make([]*Card, 0, len(amounts))
	for i, amount := range amounts {
		card, err := NewCard(kernel.NewUUID(), i+1, amount, nil, false)
		if err != nil {
			return nil, fmt.Errorf("installment %d: %w", i+1, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// CheckPrice reports whether price can be split by method into installments
// that are all greater than zero.
func CheckPrice(method Method, price kernel.Money) error {
	_, err := split(method, price)
	return err
}

func split(method Method, price kernel.Money) ([]kernel.Money, error) {
	if err := method.Validate(); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}

	ratios := method.Ratios()
	amounts := make([]kernel.Money, 0, len(ratios))
	allocated := kernel.Zero()
	for i, ratio := range ratios {
		amount := price.MulRatio(ratio)
		if i == len(ratios)-1 {
			amount = price.Sub(allocated)
		}
		if !amount.IsPositive() {
			return nil, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf(
				"%s is too small for %s, installment %d would be %s", price, method, i+1, amount))
		}
		allocated = allocated.Add(amount)
		amounts = append(amounts, amount)
	}
	return amounts, nil
}

// Reschedule regenerates the scheduled cards of a ledger for a new price. Extra
// cards are kept and renumbered after the new schedule. It is only meaningful
// while every card is still Pending.
func Reschedule(method Method, price kernel.Money, cards []*Card) ([]*Card, error) {
	if !AllPending(cards) {
		return nil, errs.NewInvalidStateError("payment ledger", "has a card that already left pending")
	}
	scheduled, err := Schedule(method, price)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		if !c.extra {
			continue
		}
		if err = c.setInstallment(len(scheduled) + 1); err != nil {
			return nil, err
		}
		scheduled = append(scheduled, c)
	}
	return scheduled, nil
}

// NextInstallment is the installment number for a card appended to cards.
func NextInstallment(cards []*Card) int {
	n := 0
	for _, c := range cards {
		n = max(n, c.installment)
	}
	return n + 1
}

// AllSettled reports whether the ledger is complete: at least one card exists
// and every card, scheduled or extra, is Paid or Complete.
func AllSettled(cards []*Card) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if !c.status.IsSettled() {
			return false
		}
	}
	return true
}

// AllPending reports whether no card has left Pending.
func AllPending(cards []*Card) bool {
	for _, c := range cards {
		if c.status != Pending {
			return false
		}
	}
	return true
}

// ScheduledTotal sums the cards generated from the payment method, excluding extras.
func ScheduledTotal(cards []*Card) kernel.Money {
	total := kernel.Zero()
	for _, c := range cards {
		if !c.extra {
			total = total.Add(c.amount)
		}
	}
	return total
}

// Total sums every card.
func Total(cards []*Card) kernel.Money {
	total := kernel.Zero()
	for _, c := range cards {
		total = total.Add(c.amount)
	}
	return total
}

// Unsettled counts cards that still block ledger completion.
func Unsettled(cards []*Card) int {
	n := 0
	for _, c := range cards {
		if !c.status.IsSettled() {
			n++
		}
	}
	return n
}
