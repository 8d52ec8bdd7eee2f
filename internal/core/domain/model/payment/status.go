package payment

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status is the state of a payment card. Transitions are forward only:
//
//	Pending ──(receipt attached)──> Paid ──> Complete
type Status int

const (
	Unknown Status = iota
	Pending
	Paid
	Complete
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Paid:     "Paid",
		Complete: "Complete",
	}
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s && st != Unknown {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Complete {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsSettled reports whether the card counts toward ledger completion.
func (s Status) IsSettled() bool {
	return s == Paid || s == Complete
}

// next returns the only legal successor of s.
func (s Status) next() Status {
	switch s {
	case Pending:
		return Paid
	case Paid:
		return Complete
	default:
		return Unknown
	}
}
