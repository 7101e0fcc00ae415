package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cleared-dev/payfield/internal/config"
	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/verdict"
)

func fixedClock() time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestDefault_Operations(t *testing.T) {
	e := Default(WithClock(fixedClock))

	assert.NoError(t, e.ValidateCardNumber("4532015112830366"))
	assert.ErrorIs(t, e.ValidateCardNumber("4532015112830367"), verdict.ErrChecksumFailed)

	assert.NoError(t, e.ValidateRoutingNumber("021000021"))
	assert.ErrorIs(t, e.ValidateRoutingNumber("021000022"), verdict.ErrChecksumFailed)
	assert.NoError(t, e.ValidateAccountNumber("123456789"))

	assert.NoError(t, e.ValidateAmount(0.50, model.PaymentTypeCard))
	assert.ErrorIs(t, e.ValidateAmount(0.49, model.PaymentTypeCard), verdict.ErrOutOfRange)

	assert.ErrorIs(t, e.ValidateExpiry(1, 2020), verdict.ErrExpired)
	assert.ErrorIs(t, e.ValidateExpiry(13, 2026), verdict.ErrMalformedFormat)
	assert.NoError(t, e.ValidateExpiry(2, 2027))

	assert.NoError(t, e.ValidateCVV("1234", "amex"))
	assert.NoError(t, e.ValidateFrequency("quarterly"))
	assert.NoError(t, e.ValidateCurrency("CAD"))

	assert.Equal(t, "$1,234.56", e.FormatCurrency(decimal.RequireFromString("1234.56"), "USD"))
	d, ok := e.ParseCurrencyInput("$1,234.56")
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.56")))
	_, ok = e.ParseCurrencyInput("abc")
	assert.False(t, ok)

	got := e.SanitizePayload(map[string]any{"cardNumber": "4111111111111111", "note": "ok"})
	assert.Equal(t, map[string]any{"cardNumber": "[REDACTED]", "note": "ok"}, got)
}

func TestNew_AppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Amount.Maximum = "100.00"
	cfg.Currencies = []string{"USD"}
	cfg.Frequencies = []string{"monthly"}
	cfg.Expiry.MaxYearsAhead = 5
	cfg.Redaction.ExtraKeys = []string{"routing"}
	cfg.Redaction.Marker = "***"

	e, err := New(cfg, WithClock(fixedClock))
	require.NoError(t, err)

	err = e.ValidateAmount(100.01, model.PaymentTypeNone)
	require.Error(t, err)
	assert.Equal(t, "Amount cannot exceed $100.00", err.Error())

	assert.ErrorIs(t, e.ValidateCurrency("EUR"), verdict.ErrUnsupportedValue)
	assert.ErrorIs(t, e.ValidateFrequency("weekly"), verdict.ErrUnsupportedValue)
	assert.ErrorIs(t, e.ValidateExpiry(1, 2031), verdict.ErrOutOfRange)

	got := e.SanitizePayload(map[string]any{"routingNumber": "021000021"})
	assert.Equal(t, map[string]any{"routingNumber": "***"}, got)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Amount.Maximum = "lots"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	e := Default(WithClock(fixedClock))

	tests := []struct {
		field string
		value string
		opts  CheckOptions
		kind  verdict.Kind
	}{
		{"card_number", "4532 0151 1283 0366", CheckOptions{}, ""},
		{"card_number", "", CheckOptions{}, verdict.KindMissing},
		{"cvv", "123", CheckOptions{}, ""},
		{"cvv", "123", CheckOptions{Brand: "American Express"}, verdict.KindMalformedFormat},
		{"cvv", "123", CheckOptions{CardNumber: "378282246310005"}, verdict.KindMalformedFormat},
		{"cvv", "1234", CheckOptions{CardNumber: "3782 822463 10005"}, ""},
		{"expiry", "12/27", CheckOptions{}, ""},
		{"expiry", "12/24", CheckOptions{}, verdict.KindExpired},
		{"expiry", "1/2", CheckOptions{}, verdict.KindMalformedFormat},
		{"routing_number", "021000021", CheckOptions{}, ""},
		{"account_number", "12", CheckOptions{}, verdict.KindMalformedFormat},
		{"amount", "0.50", CheckOptions{PaymentType: "card"}, ""},
		{"amount", "0.99", CheckOptions{PaymentType: "ach"}, verdict.KindOutOfRange},
		{"amount", "10.999", CheckOptions{}, verdict.KindMalformedFormat},
		{"amount", "", CheckOptions{}, verdict.KindMissing},
		{"frequency", "annually", CheckOptions{}, ""},
		{"currency", "", CheckOptions{}, verdict.KindMissing},
	}
	for _, tt := range tests {
		err := e.Check(tt.field, tt.value, tt.opts)
		if tt.kind == "" {
			assert.NoError(t, err, "%s=%q", tt.field, tt.value)
			continue
		}
		assert.Equal(t, tt.kind, verdict.KindOf(err), "%s=%q: %v", tt.field, tt.value, err)
	}
}

func TestCheck_UsageErrors(t *testing.T) {
	e := Default()

	err := e.Check("ssn", "123-45-6789", CheckOptions{})
	assert.ErrorIs(t, err, ErrUnknownField)

	err = e.Check("amount", "5", CheckOptions{PaymentType: "paypal"})
	require.Error(t, err)
	assert.Equal(t, verdict.Kind(""), verdict.KindOf(err))
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{
		"account_number", "amount", "card_number", "currency",
		"cvv", "expiry", "frequency", "routing_number",
	}, Fields())
}

func TestLogger_NeverLogsValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := Default(WithLogger(zap.New(core)))

	_ = e.ValidateCardNumber("4532015112830367")
	_ = e.ValidateCVV("123", "visa")

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "field invalid", first.Message)
	assert.Equal(t, "card_number", first.ContextMap()["field"])
	assert.Equal(t, "checksum_failed", first.ContextMap()["kind"])
	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			assert.NotContains(t, v, "4532015112830367")
		}
	}
}

func TestSanitizePayload_LogsRedactedCopy(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := Default(WithLogger(zap.New(core)))

	e.SanitizePayload(map[string]any{"cvv": "123", "note": "ok"})

	require.Equal(t, 1, logs.Len())
	payload, ok := logs.All()[0].ContextMap()["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"cvv": "[REDACTED]", "note": "ok"}, payload)
}
