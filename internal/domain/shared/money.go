package shared

import (
	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary string into a fixed-point amount,
// enforcing the 2-decimal-place precision used across the schema.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount checks that an amount is positive and has at most
// 2 decimal places. Amounts are never floats anywhere in the system.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	if d.Exponent() < -2 {
		return ErrInvalidAmount
	}
	return nil
}
