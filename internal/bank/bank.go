// Package bank validates US ACH routing and account numbers.
package bank

import (
	"strings"

	"github.com/cleared-dev/payfield/internal/verdict"
)

const (
	routingField = "routing_number"
	accountField = "account_number"

	routingLength    = 9
	minAccountLength = 4
	maxAccountLength = 17
)

// abaWeights are applied to routing digits 0..8, left to right.
var abaWeights = [routingLength]int{3, 7, 1, 3, 7, 1, 3, 7, 1}

// ValidateRoutingNumber checks a 9-digit ABA routing number.
func ValidateRoutingNumber(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return verdict.Missing(routingField, "Routing number is required")
	}
	if !allDigits(s) {
		return verdict.Malformed(routingField, "Routing number must contain only digits")
	}
	if len(s) != routingLength {
		return verdict.Malformed(routingField, "Routing number must be 9 digits")
	}
	if !ABAValid(s) {
		return verdict.Checksum(routingField, "Invalid routing number")
	}
	return nil
}

// ABAValid reports whether a 9-digit string passes the ABA checksum:
// 3(d0+d3+d6) + 7(d1+d4+d7) + (d2+d5+d8) must be a multiple of 10.
func ABAValid(digits string) bool {
	if len(digits) != routingLength || !allDigits(digits) {
		return false
	}
	sum := 0
	for i := 0; i < routingLength; i++ {
		sum += abaWeights[i] * int(digits[i]-'0')
	}
	return sum%10 == 0
}

// ValidateAccountNumber checks a 4 to 17 digit account number.
func ValidateAccountNumber(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return verdict.Missing(accountField, "Account number is required")
	}
	if !allDigits(s) {
		return verdict.Malformed(accountField, "Account number must contain only digits")
	}
	if len(s) < minAccountLength || len(s) > maxAccountLength {
		return verdict.Malformed(accountField, "Account number must be between 4 and 17 digits")
	}
	return nil
}

// MaskAccount keeps the last four digits of an account number.
func MaskAccount(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
