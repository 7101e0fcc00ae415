package card

import (
	"slices"
	"strconv"

	"github.com/cleared-dev/payfield/internal/model"
)

// brandRule matches card numbers whose first prefixLen digits fall in
// [lo, hi]. Rules are evaluated in order; the first match wins.
type brandRule struct {
	brand     model.Brand
	prefixLen int
	lo, hi    int
	lengths   []int
}

var brandRules = []brandRule{
	{brand: model.BrandVisa, prefixLen: 1, lo: 4, hi: 4, lengths: []int{13, 16, 19}},
	{brand: model.BrandMastercard, prefixLen: 2, lo: 51, hi: 55, lengths: []int{16}},
	{brand: model.BrandMastercard, prefixLen: 4, lo: 2221, hi: 2720, lengths: []int{16}},
	{brand: model.BrandAmericanExpress, prefixLen: 2, lo: 34, hi: 34, lengths: []int{15}},
	{brand: model.BrandAmericanExpress, prefixLen: 2, lo: 37, hi: 37, lengths: []int{15}},
}

func (r brandRule) matches(digits string) bool {
	if len(digits) < r.prefixLen {
		return false
	}
	prefix, err := strconv.Atoi(digits[:r.prefixLen])
	if err != nil {
		return false
	}
	return prefix >= r.lo && prefix <= r.hi
}

func matchRule(digits string) (brandRule, bool) {
	for _, r := range brandRules {
		if r.matches(digits) {
			return r, true
		}
	}
	return brandRule{}, false
}

// DetectBrand returns the network for a cleaned card number, or
// BrandUnknown when no rule matches.
func DetectBrand(digits string) model.Brand {
	if r, ok := matchRule(digits); ok {
		return r.brand
	}
	return model.BrandUnknown
}

// brandLengthOK reports whether digits has a length allowed by its brand.
// Numbers with no matching rule are only subject to the generic bounds.
func brandLengthOK(digits string) bool {
	r, ok := matchRule(digits)
	if !ok {
		return true
	}
	return slices.Contains(r.lengths, len(digits))
}
