package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
	hundred  = 100
)

// Words renders amount in English words using the Indian numbering system
// (crore, lakh, thousand, hundred). Nonzero paise are appended as
// "and N Paise". Zero renders as "Zero". No currency name is added.
func Words(amount float64) string {
	rupees, paise, negative := split(amount)
	if rupees.IsZero() && paise == 0 {
		return "Zero"
	}

	var b strings.Builder
	if negative {
		b.WriteString("Minus ")
	}
	if rupees.IsPositive() {
		b.WriteString(integerWords(rupees))
	} else {
		b.WriteString("Zero")
	}
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(smallWords(paise))
		b.WriteString(" Paise")
	}
	return b.String()
}

// AmountInWords renders amount as an invoice-style phrase, for example
// "Fifty Nine Thousand Three Hundred Twenty Rupees Only".
func AmountInWords(amount float64) string {
	rupees, paise, negative := split(amount)

	var b strings.Builder
	if negative && (rupees.IsPositive() || paise > 0) {
		b.WriteString("Minus ")
	}
	if rupees.IsPositive() {
		b.WriteString(integerWords(rupees))
	} else {
		b.WriteString("Zero")
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(smallWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// split rounds amount to paise and returns the rupee and paise parts.
// Rupees stay in decimal space so amounts beyond the int64 range keep
// every digit.
func split(amount float64) (rupees decimal.Decimal, paise int64, negative bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero, 0, false
	}
	d := decimal.NewFromFloat(amount).Round(Places)
	if d.IsNegative() {
		negative = true
		d = d.Neg()
	}
	rupees = d.Truncate(0)
	paise = d.Sub(rupees).Shift(Places).IntPart()
	return rupees, paise, negative
}

var croreDecimal = decimal.NewFromInt(crore)

// integerWords converts n > 0. Whole crores are peeled in decimal space and
// named recursively; the remainder below a crore fits an int64.
func integerWords(n decimal.Decimal) string {
	if n.LessThan(croreDecimal) {
		return smallWords(n.IntPart())
	}
	q, r := n.QuoRem(croreDecimal, 0)
	words := integerWords(q) + " Crore"
	if rest := r.IntPart(); rest > 0 {
		words += " " + smallWords(rest)
	}
	return words
}

// smallWords converts 0 < n < one crore.
func smallWords(n int64) string {
	var parts []string
	if n >= lakh {
		parts = append(parts, underHundred(n/lakh)+" Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, underHundred(n/thousand)+" Thousand")
		n %= thousand
	}
	if n >= hundred {
		parts = append(parts, ones[n/hundred]+" Hundred")
		n %= hundred
	}
	if n > 0 {
		parts = append(parts, underHundred(n))
	}
	return strings.Join(parts, " ")
}

func underHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
