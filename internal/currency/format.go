package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/cleared-dev/payfield/internal/model"
)

const fractionDigits = 2

// Formatter renders amounts with locale-specific digit grouping.
type Formatter struct {
	tag language.Tag
}

// NewFormatter returns a Formatter for tag.
func NewFormatter(tag language.Tag) Formatter {
	return Formatter{tag: tag}
}

var defaultFormatter = NewFormatter(language.AmericanEnglish)

// Format renders d for code using US English grouping, e.g. "$1,234.50".
func Format(d decimal.Decimal, code string) string {
	return defaultFormatter.Format(d, code)
}

// FormatMinor renders an amount given in minor units.
func FormatMinor(cents int64, code string) string {
	return defaultFormatter.Format(decimal.New(cents, -fractionDigits), code)
}

// Format renders d with exactly two fractional digits, prefixed by the
// currency symbol. Codes without a known symbol are prefixed with the code.
func (f Formatter) Format(d decimal.Decimal, code string) string {
	rounded := d.Round(fractionDigits)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	digits := f.digits(rounded)

	symbol := model.CurrencyCode(code).Symbol()
	switch {
	case symbol != "":
		return sign + symbol + digits
	case code != "":
		return sign + code + " " + digits
	default:
		return sign + digits
	}
}

// digits renders a non-negative amount with two fractional digits. The
// integer and fractional parts are printed separately as integers so no
// cents are lost to floating point.
func (f Formatter) digits(d decimal.Decimal) string {
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(fractionDigits).IntPart()

	p := message.NewPrinter(f.tag)
	var intPart string
	if big := whole.BigInt(); big.IsInt64() {
		intPart = p.Sprint(number.Decimal(big.Int64()))
	} else {
		intPart = whole.String()
	}
	frac := p.Sprint(number.Decimal(cents, number.MinIntegerDigits(fractionDigits)))
	return intPart + decimalSeparator(p) + frac
}

// decimalSeparator is whatever the locale prints between the digits of 0.5.
func decimalSeparator(p *message.Printer) string {
	half := []rune(p.Sprint(number.Decimal(0.5, number.Scale(1))))
	if len(half) < 3 {
		return "."
	}
	return string(half[1 : len(half)-1])
}
