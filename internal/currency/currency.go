// Package currency validates currency codes and converts amounts to and from
// display text.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"

	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/verdict"
)

const field = "currency"

// Set is a closed set of accepted currency codes.
type Set struct {
	codes []model.CurrencyCode
}

// NewSet returns a Set accepting exactly codes.
func NewSet(codes ...model.CurrencyCode) Set {
	return Set{codes: append([]model.CurrencyCode(nil), codes...)}
}

// DefaultSet accepts USD, CAD and EUR.
func DefaultSet() Set {
	return NewSet(model.Currencies...)
}

// Validate checks code against DefaultSet.
func Validate(code string) error {
	return DefaultSet().Validate(code)
}

// Validate reports whether code is in the set. Matching is exact; "usd" is
// not accepted.
func (s Set) Validate(code string) error {
	if code == "" {
		return verdict.Missing(field, "Currency is required")
	}
	for _, c := range s.codes {
		if string(c) == code {
			return nil
		}
	}
	return verdict.Unsupported(field, "Unsupported currency")
}

// CheckISO reports whether code is a recognized ISO 4217 currency written
// in its canonical upper-case form.
func CheckISO(code string) error {
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return fmt.Errorf("currency %q: %w", code, err)
	}
	if unit.String() != code {
		return fmt.Errorf("currency %q: must be written as %q", code, unit.String())
	}
	return nil
}

// ParseInput extracts an amount from user-typed text such as "$1,234.56".
// Every character other than a digit, '.' or '-' is dropped before parsing.
// It returns false when nothing parseable remains.
func ParseInput(text string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
