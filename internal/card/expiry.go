package card

import (
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/verdict"
)

const (
	expiryField = "expiry"

	minExpiryYear        = 1000
	defaultMaxYearsAhead = 20
)

// ExpiryPolicy bounds how far in the future an expiry year may be.
type ExpiryPolicy struct {
	MaxYearsAhead int
}

// DefaultExpiryPolicy allows expiry years up to 20 years ahead.
func DefaultExpiryPolicy() ExpiryPolicy {
	return ExpiryPolicy{MaxYearsAhead: defaultMaxYearsAhead}
}

// ValidateExpiry checks month/year against now using DefaultExpiryPolicy.
func ValidateExpiry(month, year int, now time.Time) error {
	return DefaultExpiryPolicy().Validate(month, year, now)
}

// Validate checks month/year against now. A card stays valid through the
// whole of its expiry month.
func (p ExpiryPolicy) Validate(month, year int, now time.Time) error {
	if month < 1 || month > 12 {
		return verdict.Malformed(expiryField, "Invalid expiration month")
	}
	currentYear := now.Year()
	if year < minExpiryYear {
		return verdict.OutOfRange(expiryField, "Invalid expiration year")
	}
	if year > currentYear+p.MaxYearsAhead {
		return verdict.OutOfRange(expiryField, "Expiration year is too far in the future")
	}
	if now.After(model.Expiry{Month: month, Year: year}.EndOfMonth(now.Location())) {
		return verdict.Expired(expiryField, "Card has expired")
	}
	return nil
}

// ParseExpiry reads card-face input: "MM/YY", "MMYY", "MM/YYYY" or
// "MMYYYY". Two-digit years are taken as 20YY.
func ParseExpiry(in string) (model.Expiry, error) {
	s := strings.TrimSpace(in)
	if s == "" {
		return model.Expiry{}, verdict.Missing(expiryField, "Expiration date is required")
	}
	s = strings.ReplaceAll(s, "/", "")
	s = strings.ReplaceAll(s, " ", "")
	if (len(s) != 4 && len(s) != 6) || !allDigits(s) {
		return model.Expiry{}, verdict.Malformed(expiryField, "Expiration date must be MM/YY")
	}
	month, _ := strconv.Atoi(s[:2])
	year, _ := strconv.Atoi(s[2:])
	if len(s) == 4 {
		year += 2000
	}
	return model.Expiry{Month: month, Year: year}, nil
}
