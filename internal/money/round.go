package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places is the currency precision used for every stored amount (paise).
const Places = 2

// Round rounds v half away from zero to two decimal places.
// NaN and infinities collapse to zero so callers never carry them into totals.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(Places).InexactFloat64()
}

// RoundToRupee rounds v to the nearest whole rupee.
func RoundToRupee(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

// RoundOff returns the adjustment that brings v to the nearest rupee.
func RoundOff(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	d := decimal.NewFromFloat(v).Round(Places)
	return d.Round(0).Sub(d).InexactFloat64()
}

// Sum adds the values in decimal space and rounds the result to paise.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	v, _ := finite(total.Round(Places))
	return v
}

// Mul multiplies a and b and rounds the product to paise. A product outside
// the float64 range is zero.
func Mul(a, b float64) float64 {
	v, _ := Product(a, b)
	return v
}

// Product is Mul that also reports whether the product fit in a float64.
func Product(a, b float64) (float64, bool) {
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return 0, false
	}
	return finite(decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(Places))
}

// Percent returns pct percent of v, rounded to paise.
func Percent(v, pct float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	p, _ := finite(decimal.NewFromFloat(v).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(Places))
	return p
}

// ApproxEqual reports whether a and b agree to within half a paisa.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func finite(d decimal.Decimal) (float64, bool) {
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
