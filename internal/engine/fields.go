package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cleared-dev/payfield/internal/amount"
	"github.com/cleared-dev/payfield/internal/card"
)

// ErrUnknownField is returned by Check for an unregistered field name.
var ErrUnknownField = errors.New("unknown field")

// CheckOptions carries the context some fields need.
type CheckOptions struct {
	PaymentType string // amount: "card", "ach" or ""
	Brand       string // cvv: brand label
	CardNumber  string // cvv: brand is detected from this when Brand is empty
}

type fieldFunc func(e *Engine, value string, opts CheckOptions) error

var fields = map[string]fieldFunc{
	"card_number":    func(e *Engine, v string, _ CheckOptions) error { return e.ValidateCardNumber(v) },
	"cvv":            checkCVV,
	"expiry":         checkExpiry,
	"routing_number": func(e *Engine, v string, _ CheckOptions) error { return e.ValidateRoutingNumber(v) },
	"account_number": func(e *Engine, v string, _ CheckOptions) error { return e.ValidateAccountNumber(v) },
	"amount":         checkAmount,
	"frequency":      func(e *Engine, v string, _ CheckOptions) error { return e.ValidateFrequency(v) },
	"currency":       func(e *Engine, v string, _ CheckOptions) error { return e.ValidateCurrency(v) },
}

// Fields returns the names accepted by Check, sorted.
func Fields() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check validates a single text value for the named field. A nil error
// means the value is valid; validation failures are *verdict.Error and
// any other error is a usage error.
func (e *Engine) Check(field, value string, opts CheckOptions) error {
	fn, ok := fields[field]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	return fn(e, value, opts)
}

func checkCVV(e *Engine, value string, opts CheckOptions) error {
	brand := opts.Brand
	if brand == "" && opts.CardNumber != "" {
		brand = string(card.DetectBrand(card.Clean(opts.CardNumber)))
	}
	return e.ValidateCVV(value, brand)
}

func checkExpiry(e *Engine, value string, _ CheckOptions) error {
	exp, err := card.ParseExpiry(value)
	if err != nil {
		return e.checked("expiry", err)
	}
	return e.ValidateExpiry(exp.Month, exp.Year)
}

func checkAmount(e *Engine, value string, opts CheckOptions) error {
	pt, err := amount.ParsePaymentType(opts.PaymentType)
	if err != nil {
		return err
	}
	d, err := amount.Parse(value)
	if err != nil {
		return e.checked("amount", err)
	}
	_, err = e.ValidateAmountDecimal(d, pt)
	return err
}
