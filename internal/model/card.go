package model

import "time"

// CardNumber is a cleaned, validated card number.
type CardNumber struct {
	Digits string // ASCII digits only
	Brand  Brand
}

// Expiry is a card expiration month and four-digit year.
type Expiry struct {
	Month int
	Year  int
}

// EndOfMonth returns the last instant of the expiry month in loc.
// A card is usable through the end of its printed month.
func (e Expiry) EndOfMonth(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	firstNext := time.Date(e.Year, time.Month(e.Month), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	return firstNext.Add(-time.Nanosecond)
}
