package card

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/verdict"
)

// withCheckDigit appends the Luhn check digit to payload.
func withCheckDigit(payload string) string {
	return payload + string(LuhnCheckDigit(payload))
}

func TestLuhnValid(t *testing.T) {
	assert.True(t, LuhnValid("4532015112830366"))
	assert.False(t, LuhnValid("4532015112830367"))
	assert.True(t, LuhnValid("378282246310005"))
	assert.True(t, LuhnValid("0"))
	assert.False(t, LuhnValid(""))
	assert.False(t, LuhnValid("45320151128303a6"))
}

func TestLuhnCheckDigit(t *testing.T) {
	assert.Equal(t, byte('6'), LuhnCheckDigit("453201511283036"))
	assert.Equal(t, byte('5'), LuhnCheckDigit("37828224631000"))
}

func TestDetectBrand(t *testing.T) {
	tests := []struct {
		digits string
		want   model.Brand
	}{
		{"4532015112830366", model.BrandVisa},
		{"5555555555554444", model.BrandMastercard},
		{"5105105105105100", model.BrandMastercard},
		{"2221000000000009", model.BrandMastercard},
		{"2720990000000000", model.BrandMastercard},
		{"2721000000000000", model.BrandUnknown},
		{"378282246310005", model.BrandAmericanExpress},
		{"341111111111111", model.BrandAmericanExpress},
		{"6011111111111117", model.BrandUnknown},
		{"", model.BrandUnknown},
		{"5", model.BrandUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectBrand(tt.digits), "DetectBrand(%q)", tt.digits)
	}
}

func TestValidateNumber_Valid(t *testing.T) {
	for _, raw := range []string{
		"4532015112830366",
		"4532 0151 1283 0366",
		"4532-0151-1283-0366",
		" 4532015112830366\t",
		"4222222222222",    // 13-digit Visa
		"5555555555554444", // Mastercard 5-series
		"2221000000000009", // Mastercard 2-series
		"378282246310005",  // Amex
		"6011111111111117", // no brand rule, generic bounds only
	} {
		assert.NoError(t, ValidateNumber(raw), raw)
	}
}

func TestValidateNumber_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind verdict.Kind
	}{
		{"empty", "", verdict.KindMissing},
		{"only separators", " - - ", verdict.KindMissing},
		{"letters", "4532a15112830366", verdict.KindMalformedFormat},
		{"luhn", "4532015112830367", verdict.KindChecksumFailed},
		{"too short", "000000000000", verdict.KindMalformedFormat},
		{"too long", withCheckDigit(strings.Repeat("0", 19)), verdict.KindMalformedFormat},
		{"amex 16 digits", withCheckDigit("34" + strings.Repeat("0", 13)), verdict.KindMalformedFormat},
		{"visa 15 digits", withCheckDigit("4" + strings.Repeat("1", 13)), verdict.KindMalformedFormat},
		{"mastercard 19 digits", withCheckDigit("51" + strings.Repeat("0", 16)), verdict.KindMalformedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNumber(tt.raw)
			require.Error(t, err)
			assert.Equal(t, tt.kind, verdict.KindOf(err))
			if tt.kind == verdict.KindMissing {
				assert.Equal(t, "Card number is required", err.Error())
			} else {
				assert.Equal(t, "Invalid credit card number", err.Error())
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	n, err := ParseNumber("3782 822463 10005")
	require.NoError(t, err)
	assert.Equal(t, "378282246310005", n.Digits)
	assert.Equal(t, model.BrandAmericanExpress, n.Brand)
}

func TestValidateNumber_LuhnValidNumbersPass(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(minLength, maxLength).Draw(t, "length")
		payload := rapid.StringOfN(rapid.RuneFrom([]rune("0123456789")), length-1, length-1, -1).Draw(t, "payload")
		number := withCheckDigit(payload)

		err := ValidateNumber(number)
		if brandLengthOK(number) {
			if err != nil {
				t.Fatalf("ValidateNumber(%q) = %v, want nil", number, err)
			}
		} else if verdict.KindOf(err) != verdict.KindMalformedFormat {
			t.Fatalf("ValidateNumber(%q) = %v, want brand length failure", number, err)
		}
	})
}

func TestMask(t *testing.T) {
	assert.Equal(t, "************0366", Mask("4532-0151-1283-0366"))
	assert.Equal(t, "***", Mask("123"))
}

func TestValidateCVV(t *testing.T) {
	tests := []struct {
		cvv     string
		brand   string
		kind    verdict.Kind
		message string
	}{
		{"123", "", "", ""},
		{"123", "visa", "", ""},
		{"1234", "American Express", "", ""},
		{"1234", "amex", "", ""},
		{"", "visa", verdict.KindMissing, "CVV is required"},
		{"12a", "visa", verdict.KindMalformedFormat, "CVV must contain only digits"},
		{"1234", "visa", verdict.KindMalformedFormat, "CVV must be 3 digits"},
		{"123", "amex", verdict.KindMalformedFormat, "CVV must be 4 digits for American Express"},
	}
	for _, tt := range tests {
		err := ValidateCVV(tt.cvv, tt.brand)
		if tt.kind == "" {
			assert.NoError(t, err, "ValidateCVV(%q, %q)", tt.cvv, tt.brand)
			continue
		}
		require.Error(t, err, "ValidateCVV(%q, %q)", tt.cvv, tt.brand)
		assert.Equal(t, tt.kind, verdict.KindOf(err))
		assert.Equal(t, tt.message, err.Error())
	}
}

func TestValidateCVVForBrand_FromCardNumber(t *testing.T) {
	brand := DetectBrand("378282246310005")
	assert.NoError(t, ValidateCVVForBrand("1234", brand))
	assert.Error(t, ValidateCVVForBrand("123", brand))
}

func TestValidateExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		month, year int
		kind        verdict.Kind
		message     string
	}{
		{1, 2025, "", ""},
		{12, 2030, "", ""},
		{1, 2045, "", ""},
		{1, 2020, verdict.KindExpired, "Card has expired"},
		{12, 2024, verdict.KindExpired, "Card has expired"},
		{13, 2026, verdict.KindMalformedFormat, "Invalid expiration month"},
		{0, 2026, verdict.KindMalformedFormat, "Invalid expiration month"},
		{1, 999, verdict.KindOutOfRange, "Invalid expiration year"},
		{1, 2046, verdict.KindOutOfRange, "Expiration year is too far in the future"},
	}
	for _, tt := range tests {
		err := ValidateExpiry(tt.month, tt.year, now)
		if tt.kind == "" {
			assert.NoError(t, err, "%02d/%d", tt.month, tt.year)
			continue
		}
		require.Error(t, err, "%02d/%d", tt.month, tt.year)
		assert.Equal(t, tt.kind, verdict.KindOf(err))
		assert.Equal(t, tt.message, err.Error())
	}
}

func TestValidateExpiry_ValidThroughEndOfMonth(t *testing.T) {
	lastInstant := time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)
	assert.NoError(t, ValidateExpiry(2, 2025, lastInstant))

	nextMonth := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, ValidateExpiry(2, 2025, nextMonth), verdict.ErrExpired)
}

func TestExpiryPolicy_Custom(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	p := ExpiryPolicy{MaxYearsAhead: 5}
	assert.NoError(t, p.Validate(6, 2030, now))
	assert.ErrorIs(t, p.Validate(6, 2031, now), verdict.ErrOutOfRange)
	assert.ErrorIs(t, p.Validate(5, 2025, now), verdict.ErrExpired)
}

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		in    string
		month int
		year  int
	}{
		{"12/27", 12, 2027},
		{"1227", 12, 2027},
		{"03/2030", 3, 2030},
		{" 03 / 30 ", 3, 2030},
	}
	for _, tt := range tests {
		got, err := ParseExpiry(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, model.Expiry{Month: tt.month, Year: tt.year}, got, tt.in)
	}

	_, err := ParseExpiry("")
	assert.ErrorIs(t, err, verdict.ErrMissing)

	for _, bad := range []string{"1/27", "ab/cd", "12-27", "12/275"} {
		_, err := ParseExpiry(bad)
		assert.ErrorIs(t, err, verdict.ErrMalformedFormat, bad)
	}
}
