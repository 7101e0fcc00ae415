// Package engine assembles the field validators, sanitizer and formatter
// under one configured policy.
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/cleared-dev/payfield/internal/amount"
	"github.com/cleared-dev/payfield/internal/bank"
	"github.com/cleared-dev/payfield/internal/card"
	"github.com/cleared-dev/payfield/internal/config"
	"github.com/cleared-dev/payfield/internal/currency"
	"github.com/cleared-dev/payfield/internal/logging"
	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/recurring"
	"github.com/cleared-dev/payfield/internal/redact"
	"github.com/cleared-dev/payfield/internal/verdict"
)

// Engine holds a validated policy. It has no mutable state after New and is
// safe for concurrent use.
type Engine struct {
	limits      amount.Limits
	expiry      card.ExpiryPolicy
	currencies  currency.Set
	frequencies recurring.Set
	formatter   currency.Formatter
	sanitizer   redact.Sanitizer
	now         func() time.Time
	log         *zap.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger for per-check debug output. Field values are
// never logged.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New builds an Engine from cfg.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tag, err := language.Parse(cfg.Format.Locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale: %w", err)
	}

	codes := make([]model.CurrencyCode, len(cfg.Currencies))
	for i, c := range cfg.Currencies {
		codes[i] = model.CurrencyCode(c)
	}
	freqs := make([]model.Frequency, len(cfg.Frequencies))
	for i, f := range cfg.Frequencies {
		freqs[i] = model.Frequency(f)
	}

	e := &Engine{
		limits: amount.Limits{
			CardMinimum: decimal.RequireFromString(cfg.Amount.CardMinimum),
			ACHMinimum:  decimal.RequireFromString(cfg.Amount.ACHMinimum),
			Maximum:     decimal.RequireFromString(cfg.Amount.Maximum),
		},
		expiry:      card.ExpiryPolicy{MaxYearsAhead: cfg.Expiry.MaxYearsAhead},
		currencies:  currency.NewSet(codes...),
		frequencies: recurring.NewSet(freqs...),
		formatter:   currency.NewFormatter(tag),
		sanitizer: redact.New(redact.Options{
			ExtraKeys: cfg.Redaction.ExtraKeys,
			Marker:    cfg.Redaction.Marker,
			MaxDepth:  cfg.Redaction.MaxDepth,
		}),
		now: time.Now,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Default returns an Engine with the built-in policy.
func Default(opts ...Option) *Engine {
	e, err := New(config.Default(), opts...)
	if err != nil {
		panic("engine: default config is invalid: " + err.Error())
	}
	return e
}

// Sanitizer returns the configured sanitizer.
func (e *Engine) Sanitizer() redact.Sanitizer {
	return e.sanitizer
}

func (e *Engine) checked(field string, err error) error {
	if err == nil {
		e.log.Debug("field valid", zap.String("field", field))
		return nil
	}
	e.log.Debug("field invalid",
		zap.String("field", field),
		zap.String("kind", string(verdict.KindOf(err))),
	)
	return err
}

// ValidateAmount checks a floating-point amount.
func (e *Engine) ValidateAmount(v float64, paymentType model.PaymentType) error {
	return e.checked("amount", e.limits.ValidateFloat(v, paymentType))
}

// ValidateAmountDecimal checks a decimal amount and returns it in minor units.
func (e *Engine) ValidateAmountDecimal(d decimal.Decimal, paymentType model.PaymentType) (int64, error) {
	cents, err := e.limits.ValidateDecimal(d, paymentType)
	return cents, e.checked("amount", err)
}

// ValidateCardNumber checks a raw card number.
func (e *Engine) ValidateCardNumber(raw string) error {
	return e.checked("card_number", card.ValidateNumber(raw))
}

// ValidateExpiry checks month/year against the engine clock.
func (e *Engine) ValidateExpiry(month, year int) error {
	return e.checked("expiry", e.expiry.Validate(month, year, e.now()))
}

// ValidateCVV checks a security code for a free-form brand label.
func (e *Engine) ValidateCVV(cvv, brand string) error {
	return e.checked("cvv", card.ValidateCVV(cvv, brand))
}

// ValidateRoutingNumber checks an ABA routing number.
func (e *Engine) ValidateRoutingNumber(raw string) error {
	return e.checked("routing_number", bank.ValidateRoutingNumber(raw))
}

// ValidateAccountNumber checks a bank account number.
func (e *Engine) ValidateAccountNumber(raw string) error {
	return e.checked("account_number", bank.ValidateAccountNumber(raw))
}

// ValidateFrequency checks a recurring cadence.
func (e *Engine) ValidateFrequency(value string) error {
	return e.checked("frequency", e.frequencies.Validate(value))
}

// ValidateCurrency checks a currency code.
func (e *Engine) ValidateCurrency(code string) error {
	return e.checked("currency", e.currencies.Validate(code))
}

// SanitizePayload returns a redacted copy of v. At debug level the redacted
// copy is also logged.
func (e *Engine) SanitizePayload(v any) any {
	if ce := e.log.Check(zap.DebugLevel, "payload sanitized"); ce != nil {
		ce.Write(logging.Payload("payload", v, e.sanitizer))
	}
	return e.sanitizer.Value(v)
}

// FormatCurrency renders d for display in the configured locale.
func (e *Engine) FormatCurrency(d decimal.Decimal, code string) string {
	return e.formatter.Format(d, code)
}

// ParseCurrencyInput reads a user-typed amount such as "$1,234.56".
func (e *Engine) ParseCurrencyInput(text string) (decimal.Decimal, bool) {
	return currency.ParseInput(text)
}
