package payment

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Method is the payment split a template selects. The persisted names match the
// values configured in templates ("FullPayment", "INSTALLMENT2_1", ...).
type Method string

const (
	FullPayment    Method = "FullPayment"
	Installment2_1 Method = "INSTALLMENT2_1"
	Installment2_2 Method = "INSTALLMENT2_2"
	Installment2_3 Method = "INSTALLMENT2_3"
	Installment2_4 Method = "INSTALLMENT2_4"
	Installment2_5 Method = "INSTALLMENT2_5"
	Installment2_6 Method = "INSTALLMENT2_6"
	Installment2_7 Method = "INSTALLMENT2_7"
	Installment2_8 Method = "INSTALLMENT2_8"
	Installment2_9 Method = "INSTALLMENT2_9"
	Installment3_1 Method = "INSTALLMENT3_1"
	Installment4_1 Method = "INSTALLMENT4_1"
	Installment5_1 Method = "INSTALLMENT5_1"
)

func ratios(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

var methodRatios = map[Method][]decimal.Decimal{
	FullPayment:    ratios("1"),
	Installment2_1: ratios("0.1", "0.9"),
	Installment2_2: ratios("0.2", "0.8"),
	Installment2_3: ratios("0.3", "0.7"),
	Installment2_4: ratios("0.4", "0.6"),
	Installment2_5: ratios("0.5", "0.5"),
	Installment2_6: ratios("0.6", "0.4"),
	Installment2_7: ratios("0.7", "0.3"),
	Installment2_8: ratios("0.8", "0.2"),
	Installment2_9: ratios("0.9", "0.1"),
	Installment3_1: ratios("0.3", "0.4", "0.3"),
	Installment4_1: ratios("0.25", "0.25", "0.25", "0.25"),
	Installment5_1: ratios("0.2", "0.2", "0.2", "0.2", "0.2"),
}

// ParseMethod accepts the configured name case-insensitively.
func ParseMethod(s string) (Method, error) {
	s = strings.TrimSpace(s)
	for m := range methodRatios {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", s))
}

// Validate rejects unsupported methods.
func (m Method) Validate() error {
	if _, ok := methodRatios[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", m))
	}
	return nil
}

// Ratios returns the share of the price each installment carries. They sum to 1.
func (m Method) Ratios() []decimal.Decimal {
	return append([]decimal.Decimal(nil), methodRatios[m]...)
}

// Installments returns the number of cards the method produces.
func (m Method) Installments() int {
	return len(methodRatios[m])
}

func (m Method) String() string {
	return string(m)
}
