package card

import (
	"fmt"

	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/verdict"
)

const cvvField = "cvv"

// ValidateCVV checks a security code. brand is a free-form label; only
// American Express changes the required length (4 instead of 3).
func ValidateCVV(cvv, brand string) error {
	return ValidateCVVForBrand(cvv, model.ParseBrand(brand))
}

// ValidateCVVForBrand is ValidateCVV with an already-resolved brand.
func ValidateCVVForBrand(cvv string, brand model.Brand) error {
	if cvv == "" {
		return verdict.Missing(cvvField, "CVV is required")
	}
	if !allDigits(cvv) {
		return verdict.Malformed(cvvField, "CVV must contain only digits")
	}
	want := brand.CVVLength()
	if len(cvv) != want {
		if brand == model.BrandAmericanExpress {
			return verdict.Malformed(cvvField, fmt.Sprintf("CVV must be %d digits for American Express", want))
		}
		return verdict.Malformed(cvvField, fmt.Sprintf("CVV must be %d digits", want))
	}
	return nil
}
