// Package recurring validates recurring-donation cadences.
package recurring

import (
	"github.com/cleared-dev/payfield/internal/model"
	"github.com/cleared-dev/payfield/internal/verdict"
)

const field = "frequency"

// Set is a closed set of accepted cadences.
type Set struct {
	frequencies []model.Frequency
}

// NewSet returns a Set accepting exactly frequencies.
func NewSet(frequencies ...model.Frequency) Set {
	return Set{frequencies: append([]model.Frequency(nil), frequencies...)}
}

// DefaultSet accepts weekly, monthly, quarterly and annually.
func DefaultSet() Set {
	return NewSet(model.Frequencies...)
}

// ValidateFrequency checks value against DefaultSet.
func ValidateFrequency(value string) error {
	return DefaultSet().Validate(value)
}

// Validate reports whether value is an accepted cadence. Matching is exact.
func (s Set) Validate(value string) error {
	if value == "" {
		return verdict.Missing(field, "Frequency is required")
	}
	for _, f := range s.frequencies {
		if string(f) == value {
			return nil
		}
	}
	return verdict.Unsupported(field, "Invalid frequency")
}
