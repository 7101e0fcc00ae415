package model

import "strings"

// Brand is the card network inferred from a card number's leading digits.
type Brand string

const (
	BrandVisa            Brand = "visa"
	BrandMastercard      Brand = "mastercard"
	BrandAmericanExpress Brand = "amex"
	BrandUnknown         Brand = "unknown"
)

// DisplayName returns the human-readable network name.
func (b Brand) DisplayName() string {
	switch b {
	case BrandVisa:
		return "Visa"
	case BrandMastercard:
		return "Mastercard"
	case BrandAmericanExpress:
		return "American Express"
	default:
		return "Unknown"
	}
}

// CVVLength returns the security-code length printed on cards of this brand.
func (b Brand) CVVLength() int {
	if b == BrandAmericanExpress {
		return 4
	}
	return 3
}

// ParseBrand maps a free-form brand label ("Amex", "American Express",
// "mastercard", ...) to a Brand. Unrecognized labels map to BrandUnknown.
func ParseBrand(s string) Brand {
	key := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	switch key {
	case "visa":
		return BrandVisa
	case "mastercard", "mc":
		return BrandMastercard
	case "amex", "americanexpress":
		return BrandAmericanExpress
	default:
		return BrandUnknown
	}
}
