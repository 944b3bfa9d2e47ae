package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Simulation arithmetic stays in float64 so results are reproducible bit for bit.
// The helpers below only shape values for display and export.

// DisplayPlaces is the number of decimal places used when presenting amounts.
const DisplayPlaces int32 = 2

// Amount converts a simulated float amount to a decimal rounded for display.
// NaN and infinities are reported as zero.
func Amount(v float64) decimal.Decimal {
	if v != v || v > maxDisplayable || v < -maxDisplayable {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(DisplayPlaces)
}

const maxDisplayable = 1e15

// FormatAmount renders an amount with fixed display places, e.g. "1550.00".
func FormatAmount(v float64) string {
	return Amount(v).StringFixed(DisplayPlaces)
}

// FormatSignedAmount renders an amount with an explicit sign, e.g. "+12.50" or "-3.00".
func FormatSignedAmount(v float64) string {
	d := Amount(v)
	if d.IsNegative() {
		return d.StringFixed(DisplayPlaces)
	}
	return "+" + d.StringFixed(DisplayPlaces)
}

// FormatRate renders an annual decimal rate as a percentage, e.g. 0.1999 -> "19.99%".
func FormatRate(apr float64) string {
	return fmt.Sprintf("%s%%", decimal.NewFromFloat(apr).Mul(decimal.NewFromInt(100)).StringFixed(DisplayPlaces))
}

// ParseAmount parses a user-supplied amount string. Empty input parses as zero.
func ParseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount string '%s': %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}
