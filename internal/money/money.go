// Package money represents currency amounts as integer cents.
//
// All ledger arithmetic happens on Cents. Conversion to and from decimal
// numbers only happens at the edges (wire messages, display) and always
// goes through shopspring/decimal so that 0.1 + 0.2 style float drift never
// reaches a balance.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Cents is an amount of money in minor currency units.
type Cents int64

const (
	// Cent is the smallest representable amount.
	Cent Cents = 1

	// Epsilon is the settlement tolerance: amounts strictly below one cent
	// are treated as fully settled.
	Epsilon = Cent
)

// MaxAmount is the largest magnitude, in currency units, accepted as money.
// Sums of roughly ninety thousand maximal amounts still fit in int64 cents.
const MaxAmount = 1_000_000_000_000

// MaxCents is MaxAmount in cents.
const MaxCents Cents = MaxAmount * 100

var maxDecimal = decimal.NewFromInt(MaxAmount)

// ErrInvalidAmount is returned when a value cannot be read as money.
var ErrInvalidAmount = errors.New("invalid amount")

// FromDecimal rounds d half away from zero to two places and returns it in
// cents. Magnitudes above MaxAmount fail with ErrInvalidAmount.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	r := d.Round(2)
	if r.Abs().GreaterThan(maxDecimal) {
		return 0, fmt.Errorf("%w: %s exceeds %d", ErrInvalidAmount, d.String(), MaxAmount)
	}
	return Cents(r.Shift(2).IntPart()), nil
}

// FromFloat converts a wire number (e.g. 12.34) to cents.
// The float is read through its shortest decimal representation, so
// FromFloat(0.1+0.2) is 30 cents, not 30.000000000000004.
func FromFloat(f float64) (Cents, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	return FromDecimal(decimal.NewFromFloat(f))
}

// Parse reads a decimal string such as "12.34" or "7".
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// Decimal returns the exact decimal value in currency units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Float64 returns the amount in currency units for wire encoding.
func (c Cents) Float64() float64 {
	return c.Decimal().InexactFloat64()
}

// String formats the amount with exactly two decimals.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Add returns a+b, or ErrInvalidAmount if the sum overflows.
func Add(a, b Cents) (Cents, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %s + %s overflows", ErrInvalidAmount, a, b)
	}
	return sum, nil
}

// Sum adds up amounts, failing on overflow.
func Sum(amounts ...Cents) (Cents, error) {
	var total Cents
	for _, a := range amounts {
		var err error
		if total, err = Add(total, a); err != nil {
			return 0, err
		}
	}
	return total, nil
}
