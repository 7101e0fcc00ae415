package model

// PaymentType selects the payment-method-specific amount minimum.
type PaymentType string

const (
	PaymentTypeNone PaymentType = ""
	PaymentTypeCard PaymentType = "card"
	PaymentTypeACH  PaymentType = "ach"
)

// Frequency is a recurring-donation cadence.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

// Frequencies lists every supported cadence in display order.
var Frequencies = []Frequency{
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyAnnually,
}

// CurrencyCode is an ISO 4217 code from the supported set.
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyCAD CurrencyCode = "CAD"
	CurrencyEUR CurrencyCode = "EUR"
)

// Currencies lists every supported currency.
var Currencies = []CurrencyCode{
	CurrencyUSD,
	CurrencyCAD,
	CurrencyEUR,
}

// Symbol returns the display symbol used when formatting amounts.
func (c CurrencyCode) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyCAD:
		return "CA$"
	case CurrencyEUR:
		return "€"
	default:
		return ""
	}
}
