package order

import (
	"fmt"
	"slices"

	"orderflow/internal/pkg/errs"
)

// Status is the top-level phase of an order.
//
// Legal edges (cancelled is reachable from every non-terminal status):
//
//	inquiry ──> quote_request ──> quote_sent ──> quote_accept ──> awaiting_payment ──> in_progress
//	                  ▲                │
//	                  └────(reject)────┘
//
//	in_progress ──> delivered ──> completed
//	                  │  ▲          ▲
//	                  ▼  │          │
//	              in_revision ──────┘
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Inquiry
	QuoteRequest
	QuoteSent
	QuoteAccept
	AwaitingPayment
	InProgress
	Delivered
	InRevision
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		Inquiry:         "inquiry",
		QuoteRequest:    "quote_request",
		QuoteSent:       "quote_sent",
		QuoteAccept:     "quote_accept",
		AwaitingPayment: "awaiting_payment",
		InProgress:      "in_progress",
		Delivered:       "delivered",
		InRevision:      "in_revision",
		Completed:       "completed",
		Cancelled:       "cancelled",
	}
}

// getTransitions lists the forward edges of every non-terminal status.
// Cancelled is added by CanTransitionTo.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Inquiry:         {QuoteRequest},
		QuoteRequest:    {QuoteSent},
		QuoteSent:       {QuoteAccept, QuoteRequest},
		QuoteAccept:     {AwaitingPayment},
		AwaitingPayment: {InProgress},
		InProgress:      {Delivered},
		Delivered:       {InRevision, Completed},
		InRevision:      {Delivered, Completed},
	}
}

// ParseStatus parses the snake_case status name used on the wire and in storage.
func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s && st != Unknown {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether target is one edge away from s.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || s.IsTerminal() {
		return false
	}
	if target == Cancelled {
		return true
	}
	return slices.Contains(getTransitions()[s], target)
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		Inquiry, QuoteRequest, QuoteSent, QuoteAccept, AwaitingPayment,
		InProgress, Delivered, InRevision, Completed, Cancelled,
	}
}

func (s Status) in(set ...Status) bool {
	return slices.Contains(set, s)
}
