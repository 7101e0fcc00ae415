// Package amount validates monetary amounts and converts them to minor units.
package amount

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/payfield/internal/currency"
	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/verdict"
)

const field = "amount"

const minorScale = 2

var hundred = decimal.NewFromInt(100)

// Limits holds the amount policy. All bounds are inclusive.
type Limits struct {
	CardMinimum decimal.Decimal
	ACHMinimum  decimal.Decimal
	Maximum     decimal.Decimal
}

// DefaultLimits returns the standard policy: $0.50 card minimum, $1.00 ACH
// minimum, $10,000.00 ceiling.
func DefaultLimits() Limits {
	return Limits{
		CardMinimum: decimal.RequireFromString("0.50"),
		ACHMinimum:  decimal.RequireFromString("1.00"),
		Maximum:     decimal.RequireFromString("10000.00"),
	}
}

// ValidateFloat checks v against DefaultLimits.
func ValidateFloat(v float64, paymentType model.PaymentType) error {
	return DefaultLimits().ValidateFloat(v, paymentType)
}

// ValidateFloat checks a floating-point amount. The float is converted to
// the shortest decimal that round-trips, so 10.999 is seen as three
// fractional digits rather than its binary approximation.
func (l Limits) ValidateFloat(v float64, paymentType model.PaymentType) error {
	// decimal.NewFromFloat panics on NaN and Inf.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return verdict.Malformed(field, "Amount must be a valid number")
	}
	_, err := l.ValidateDecimal(decimal.NewFromFloat(v), paymentType)
	return err
}

// ValidateDecimal checks d in order: positive, at most two fractional
// digits, payment-type minimum, ceiling. On success it returns the amount
// in minor units.
func (l Limits) ValidateDecimal(d decimal.Decimal, paymentType model.PaymentType) (int64, error) {
	if !d.IsPositive() {
		return 0, verdict.OutOfRange(field, "Amount must be greater than 0")
	}

	if !HasValidPrecision(d) {
		return 0, verdict.Malformed(field, "Amount cannot have more than 2 decimal places")
	}

	switch paymentType {
	case model.PaymentTypeCard:
		if d.LessThan(l.CardMinimum) {
			return 0, verdict.OutOfRange(field, "Minimum amount for card payments is "+usd(l.CardMinimum))
		}
	case model.PaymentTypeACH:
		if d.LessThan(l.ACHMinimum) {
			return 0, verdict.OutOfRange(field, "Minimum amount for ACH payments is "+usd(l.ACHMinimum))
		}
	}

	if d.GreaterThan(l.Maximum) {
		return 0, verdict.OutOfRange(field, "Amount cannot exceed "+usd(l.Maximum))
	}

	return ToMinorUnits(d), nil
}

// HasValidPrecision reports whether d has at most two fractional digits.
func HasValidPrecision(d decimal.Decimal) bool {
	scaled := d.Mul(hundred)
	return scaled.Equal(scaled.Floor())
}

// ToMinorUnits converts d to cents, rounding half away from zero.
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Round(minorScale).Shift(minorScale).IntPart()
}

// FromMinorUnits converts cents back to a decimal amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -minorScale)
}

// Parse reads a plain decimal amount such as "12.50". Currency symbols and
// grouping separators are not accepted here; see currency.ParseInput.
func Parse(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, verdict.Missing(field, "Amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, verdict.Malformed(field, "Amount must be a valid number")
	}
	return d, nil
}

func usd(d decimal.Decimal) string {
	return currency.Format(d, string(model.CurrencyUSD))
}

// ParsePaymentType maps "card", "ach" or "" to a PaymentType.
func ParsePaymentType(s string) (model.PaymentType, error) {
	switch pt := model.PaymentType(strings.ToLower(strings.TrimSpace(s))); pt {
	case model.PaymentTypeNone, model.PaymentTypeCard, model.PaymentTypeACH:
		return pt, nil
	default:
		return "", fmt.Errorf("unknown payment type %q (want card or ach)", s)
	}
}
