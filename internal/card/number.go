// Package card validates card numbers, security codes and expiry dates.
//
// Card number failures all share one message so that callers cannot tell a
// checksum miss from a length or brand mismatch.
package card

import (
	"strings"
	"unicode"

	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/verdict"
)

const (
	numberField = "card_number"

	minLength = 13
	maxLength = 19

	msgNumberRequired = "Card number is required"
	msgNumberInvalid  = "Invalid credit card number"
)

// Clean strips whitespace and hyphens from raw.
func Clean(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, raw)
}

// ValidateNumber checks a raw card number.
func ValidateNumber(raw string) error {
	_, err := ParseNumber(raw)
	return err
}

// ParseNumber cleans and validates raw, returning the digits and brand.
func ParseNumber(raw string) (model.CardNumber, error) {
	digits := Clean(raw)
	if digits == "" {
		return model.CardNumber{}, verdict.Missing(numberField, msgNumberRequired)
	}
	if !allDigits(digits) {
		return model.CardNumber{}, verdict.Malformed(numberField, msgNumberInvalid)
	}
	if !LuhnValid(digits) {
		return model.CardNumber{}, verdict.Checksum(numberField, msgNumberInvalid)
	}
	if len(digits) < minLength || len(digits) > maxLength {
		return model.CardNumber{}, verdict.Malformed(numberField, msgNumberInvalid)
	}
	if !brandLengthOK(digits) {
		return model.CardNumber{}, verdict.Malformed(numberField, msgNumberInvalid)
	}
	return model.CardNumber{Digits: digits, Brand: DetectBrand(digits)}, nil
}

// Mask returns the cleaned number with all but the last four digits
// replaced by '*'. Inputs with four or fewer characters are fully masked.
func Mask(raw string) string {
	digits := Clean(raw)
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
