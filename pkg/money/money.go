// Package money does currency arithmetic on decimals so that percentage
// splits and two-place rounding do not drift the way float math does.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Percent returns amount × pct / 100 without rounding.
func Percent(amount, pct float64) float64 {
	return percentOf(amount, pct).InexactFloat64()
}

// PercentRounded returns amount × pct / 100 rounded to two places.
func PercentRounded(amount, pct float64) float64 {
	return percentOf(amount, pct).Round(2).InexactFloat64()
}

// Sub returns a − b rounded to two places.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}

// Ratio returns part / whole × 100, or 0 when whole is zero.
func Ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole)).Mul(hundred).InexactFloat64()
}

func percentOf(amount, pct float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(pct)).Div(hundred)
}
