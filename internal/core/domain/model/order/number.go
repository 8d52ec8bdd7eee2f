package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"orderflow/internal/pkg/errs"
)

var numberPattern = regexp.MustCompile(`^CO\d{4}\d{6}$`)

// Number is the human-facing order number: "CO", the two-digit year and month of
// creation, and six random digits, e.g. "CO2603042117".
type Number string

// GenerateNumber draws a new order number for the month of now.
func GenerateNumber(now time.Time) Number {
	return Number(fmt.Sprintf("CO%s%06d", now.Format("0601"), rand.IntN(1_000_000)))
}

// ParseNumber validates a stored or user-supplied order number.
func ParseNumber(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return "", errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q does not match COyyMMnnnnnn", s))
	}
	return Number(s), nil
}

func (n Number) String() string { return string(n) }
