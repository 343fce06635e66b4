package utils

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrAmountPrecision = errors.New("amount supports at most two decimal places")
	ErrAmountTooLarge  = errors.New("amount is too large")
)

var (
	hundred       = decimal.NewFromInt(100)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
)

// ToMinorUnits converts a major-unit amount ("125.50") to the provider's
// smallest currency unit (12550).
func ToMinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	minor := d.Mul(hundred)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, ErrAmountPrecision
	}
	if minor.GreaterThan(maxMinorUnits) {
		return 0, ErrAmountTooLarge
	}
	return minor.IntPart(), nil
}

// FromMinorUnits renders a minor-unit amount as a two-decimal string
func FromMinorUnits(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
