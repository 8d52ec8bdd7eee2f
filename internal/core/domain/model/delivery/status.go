package delivery

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status is the state of a delivery item.
//
//	Pending ──> Delivered ──> Accepted
//	               │  ▲
//	               ▼  │
//	   ModificationRequested
type Status int

const (
	Unknown Status = iota
	Pending
	Delivered
	ModificationRequested
	Accepted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "Unknown",
		Pending:               "Pending",
		Delivered:             "Delivered",
		ModificationRequested: "ModificationRequested",
		Accepted:              "Accepted",
	}
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s && st != Unknown {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Accepted {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
