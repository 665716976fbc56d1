package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultDecimalOdds stands in for a missing or malformed price (about -110).
	DefaultDecimalOdds = 1.91
	// DefaultImpliedProbability is used when no usable price exists.
	DefaultImpliedProbability = 50.0
	// UnavailableOdds is the odds text for a side with no price.
	UnavailableOdds = "N/A"
)

var ErrMalformedOdds = errors.New("malformed odds")

// AmericanToImpliedProbability returns the no-vig implied win percentage.
//
//	+150 → 40.0
//	-150 → 60.0
func AmericanToImpliedProbability(odds int) float64 {
	if odds > 0 {
		return 100.0 / float64(odds+100) * 100.0
	}
	abs := math.Abs(float64(odds))
	return abs / (abs + 100.0) * 100.0
}

// AmericanToDecimal converts American odds to decimal odds.
//
//	+150 → 2.50
//	-150 → 1.67
func AmericanToDecimal(odds int) float64 {
	if odds > 0 {
		return float64(odds)/100.0 + 1.0
	}
	return 100.0/math.Abs(float64(odds)) + 1.0
}

// DecimalToAmerican converts decimal odds back to American odds. It is the
// inverse of AmericanToDecimal for any decimal other than 1.
func DecimalToAmerican(decimal float64) int {
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0))
	}
	return int(math.Round(-100.0 / (decimal - 1.0)))
}

// ParseAmericanOdds parses text such as "+115", "-110" or "100".
func ParseAmericanOdds(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == UnavailableOdds {
		return 0, fmt.Errorf("%w: %q", ErrMalformedOdds, raw)
	}
	odds, err := strconv.Atoi(strings.TrimPrefix(trimmed, "+"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedOdds, raw)
	}
	if odds == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedOdds, raw)
	}
	return odds, nil
}

// DecimalOrDefault converts American odds text to decimal odds, falling back
// to DefaultDecimalOdds.
func DecimalOrDefault(raw string) float64 {
	odds, err := ParseAmericanOdds(raw)
	if err != nil {
		return DefaultDecimalOdds
	}
	return AmericanToDecimal(odds)
}

// ImpliedOrDefault converts American odds text to an implied percentage,
// falling back to DefaultImpliedProbability.
func ImpliedOrDefault(raw string) float64 {
	odds, err := ParseAmericanOdds(raw)
	if err != nil {
		return DefaultImpliedProbability
	}
	return AmericanToImpliedProbability(odds)
}
