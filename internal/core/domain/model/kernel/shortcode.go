package kernel

import (
	"fmt"
	"math/big"
	"strings"

	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var base62Radix = big.NewInt(int64(len(base62Alphabet)))

// maxShortCodeLength is the number of base62 digits needed for 2^128-1.
const maxShortCodeLength = 22

// ShortCode returns the externally shareable form of the identifier: the 128-bit
// value of the UUID written in base62. It is derived, never stored, and
// ParseShortCode(u.ShortCode()) always yields u.
func (u UUID) ShortCode() string {
	n := new(big.Int).SetBytes(u.id[:])
	if n.Sign() == 0 {
		return "0"
	}

	digits := make([]byte, 0, maxShortCodeLength)
	mod := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, base62Radix, mod)
		digits = append(digits, base62Alphabet[mod.Int64()])
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// ParseShortCode decodes a base62 short code back into the UUID it was derived from.
func ParseShortCode(code string) (UUID, error) {
	if code == "" || len(code) > maxShortCodeLength {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("shortCode",
			fmt.Errorf("length %d is not within 1..%d", len(code), maxShortCodeLength))
	}

	n := new(big.Int)
	for _, r := range code {
		idx := strings.IndexRune(base62Alphabet, r)
		if idx < 0 {
			return UUID{}, errs.NewValueIsInvalidErrorWithCause("shortCode",
				fmt.Errorf("illegal character %q", r))
		}
		n.Mul(n, base62Radix)
		n.Add(n, big.NewInt(int64(idx)))
	}

	if n.BitLen() > 128 {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("shortCode", fmt.Errorf("value exceeds 128 bits"))
	}

	var raw uuid.UUID
	n.FillBytes(raw[:])
	id := UUID{id: raw}
	if err := id.Validate(); err != nil {
		return UUID{}, err
	}
	return id, nil
}

// ParseOrderRef accepts either the canonical UUID form or a short code.
// Inbound adapters use it for every "order id or short code" parameter.
func ParseOrderRef(ref string) (UUID, error) {
	ref = strings.TrimSpace(ref)
	if len(ref) > maxShortCodeLength {
		return UUIDFromString(ref)
	}
	return ParseShortCode(ref)
}
