package wage

import (
	"math"

	"github.com/shopspring/decimal"
)

// finite reports whether v is a usable number.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp maps NaN, infinities and negatives to 0.
func clamp(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

// dec converts a clamped float to a decimal. decimal.NewFromFloat panics on
// NaN and infinities, so every float entering the pipeline goes through here.
func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(clamp(v))
}

// Yen rounds a decimal amount to whole yen, half away from zero.
func Yen(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func hours(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// degenerate reports whether a description cannot produce a wage at all.
// Such descriptions yield a zero Result regardless of their other fields.
func degenerate(d Description) bool {
	if !finite(d.SalaryAmount) || d.SalaryAmount <= 0 {
		return true
	}
	if !finite(d.AnnualHolidays) || d.AnnualHolidays < 0 {
		return true
	}
	if !finite(d.WorkingHours) || d.WorkingHours <= 0 {
		return true
	}
	return false
}
