// Package format renders dashboard numbers in the Brazilian convention:
// "." groups thousands and "," separates decimals.
package format

import (
	"math"

	"github.com/dustin/go-humanize"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "R$"

const decimalPattern = "#.###,##"

// Currency renders amount with two decimals, rounding half up, e.g.
// 1000 -> "R$1.000,00" and -100 -> "R$-100,00".
func Currency(amount float64) string {
	return CurrencySymbol + humanize.FormatFloat(decimalPattern, amount)
}

// Percent renders a 0-100 rate as "12,34%". NaN renders as Missing.
func Percent(rate float64) string {
	if math.IsNaN(rate) {
		return Missing
	}
	return humanize.FormatFloat(decimalPattern, rate) + "%"
}

// Days renders an average day count with one decimal, e.g. "35,0 dias".
// NaN renders as Missing.
func Days(avg float64) string {
	if math.IsNaN(avg) {
		return Missing
	}
	return humanize.FormatFloat("#.###,#", avg) + " dias"
}

// Count renders an integer with thousands separators.
func Count(n int) string {
	return humanize.FormatInteger("#.###,", n)
}

// Missing is shown for undefined statistics.
const Missing = "—"
