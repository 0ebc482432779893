// Package loan holds the pure lending arithmetic: EMI schedules,
// interest-rate extraction from guide text, and eligibility-limit
// parsing with Indian numbering units.
package loan

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	percentPattern = regexp.MustCompile(`(\d+\.?\d*)%`)
	numberPattern  = regexp.MustCompile(`(\d+\.?\d*)`)
)

// EMI computes the equated monthly installment for a principal at an
// annual percentage rate over tenureYears, truncated to a whole unit.
// A zero rate yields zero.
func EMI(principal int64, annualRate float64, tenureYears int) int64 {
	monthlyRate := annualRate / (12 * 100)
	months := tenureYears * 12
	if monthlyRate == 0 {
		return 0
	}

	compound := math.Pow(1+monthlyRate, float64(months))
	emi := float64(principal) * monthlyRate * compound / (compound - 1)
	return int64(emi)
}

// InterestRateFrom scans guide passages for the first percentage figure
// and falls back to the configured default when none is present.
func InterestRateFrom(passages []string, fallback float64) float64 {
	for _, passage := range passages {
		match := percentPattern.FindStringSubmatch(passage)
		if match == nil {
			continue
		}
		rate, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		return rate
	}
	return fallback
}

// EligibilityValue parses a numeric limit the model extracted from the
// guide, normalizing Crore and Lakh units. Zero means the limit is not
// stated and the check is unenforced.
func EligibilityValue(raw string) int64 {
	match := numberPattern.FindStringSubmatch(raw)
	if match == nil {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}

	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "crore"):
		value *= 10_000_000
	case strings.Contains(lowered, "lakh"):
		value *= 100_000
	}
	return int64(value)
}
