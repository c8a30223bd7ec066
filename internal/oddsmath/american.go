// Package oddsmath converts between American odds, decimal odds and implied
// probabilities.
package oddsmath

import (
	"errors"
	"math"
)

var (
	ErrZeroAmerican       = errors.New("invalid American odds: cannot be 0")
	ErrInvalidDecimal     = errors.New("invalid decimal odds: must be >= 1.0")
	ErrInvalidProbability = errors.New("invalid probability: must be between 0 and 1")
)

// AmericanToDecimal converts American odds to decimal odds.
// +150 is 2.50, -150 is 1.67.
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, ErrZeroAmerican
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/float64(-american) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds, rounded to the
// nearest integer.
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal < 1.0 || math.IsNaN(decimal) {
		return 0, ErrInvalidDecimal
	}
	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	if decimal == 1.0 {
		return 0, ErrInvalidDecimal
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// ProbabilityToDecimal converts a 0-1 probability to fair decimal odds.
func ProbabilityToDecimal(probability float64) (float64, error) {
	if probability <= 0 || probability >= 1 || math.IsNaN(probability) {
		return 0, ErrInvalidProbability
	}
	return 1.0 / probability, nil
}

// ProbabilityToAmerican converts a 0-1 probability to fair American odds.
func ProbabilityToAmerican(probability float64) (int, error) {
	decimal, err := ProbabilityToDecimal(probability)
	if err != nil {
		return 0, err
	}
	return DecimalToAmerican(decimal)
}

// AmericanToImpliedProbability returns the bookmaker's implied probability, 0-1.
func AmericanToImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / decimal, nil
}
