package contract

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status is the signing state of a contract.
//
//	Pending ──(both signed)──> Executed
//	   │  ▲                       │
//	   ▼  └──(approve/reject)─────┤
//	ChangeRequested <─(request)───┘
type Status int

const (
	Unknown Status = iota
	Pending
	Executed
	ChangeRequested
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		Pending:         "Pending",
		Executed:        "Executed",
		ChangeRequested: "ChangeRequested",
	}
}

// ParseStatus parses the persisted status name.
func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s && st != Unknown {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("contract status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > ChangeRequested {
		return errs.NewValueIsInvalidErrorWithCause("contract status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
