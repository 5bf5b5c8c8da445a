package document

import (
	"fmt"
	"math"
	"strings"

	"docdesk/internal/domain"
	"docdesk/internal/money"
)

// mathTolerance allows one paisa of rounding drift.
const mathTolerance = 0.01

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= mathTolerance+1e-9
}

func mathResult(passed bool, fieldPath, expected, actual, ruleName string) ValidationResult {
	msg := fmt.Sprintf("%s: %s calculation matches", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s calculation mismatch (expected %s, got %s)", ruleName, fieldPath, expected, actual)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

// MathRules returns the arithmetic checks.
func MathRules() []*Rule {
	return []*Rule{
		{
			key: "math.item.amount", name: "Math: Item Amount",
			ruleType: domain.ValidationRuleSumCheck, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.Items))
				for i := range d.Items {
					item := &d.Items[i]
					fp := fmt.Sprintf("items[%d].amount", i)
					expected := money.Mul(item.Quantity, item.UnitPrice)
					passed := approxEqual(item.Amount, expected)
					results = append(results, mathResult(passed, fp, fmtf(expected), fmtf(item.Amount), "Math: Item Amount"))
				}
				return results
			},
		},
		{
			key: "math.subtotal", name: "Math: Subtotal",
			ruleType: domain.ValidationRuleSumCheck, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				amounts := make([]float64, 0, len(d.Items))
				for i := range d.Items {
					amounts = append(amounts, d.Items[i].Amount)
				}
				sum := money.Sum(amounts...)
				passed := approxEqual(d.Subtotal, sum)
				return []ValidationResult{mathResult(passed, "subtotal", fmtf(sum), fmtf(d.Subtotal), "Math: Subtotal")}
			},
		},
		{
			key: "math.discount", name: "Math: Discount",
			ruleType: domain.ValidationRuleSumCheck, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				passed := d.Discount >= 0 && d.Discount <= d.Subtotal
				msg := "Math: Discount: within subtotal"
				if !passed {
					msg = fmt.Sprintf("Math: Discount: %.2f is outside 0..%.2f", d.Discount, d.Subtotal)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "discount",
					ExpectedValue: fmt.Sprintf("0 <= discount <= %s", fmtf(d.Subtotal)), ActualValue: fmtf(d.Discount), Message: msg,
				}}
			},
		},
		{
			key: "math.tax.amount", name: "Math: Tax Amount",
			ruleType: domain.ValidationRuleSumCheck, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				taxable := money.Sum(d.Subtotal, -d.Discount)
				if taxable < 0 {
					taxable = 0
				}
				if d.IGST != 0 {
					expected := money.Percent(taxable, d.TaxRate)
					return []ValidationResult{mathResult(approxEqual(d.IGST, expected), "igst", fmtf(expected), fmtf(d.IGST), "Math: Tax Amount")}
				}
				half := money.Percent(taxable, d.TaxRate/2)
				return []ValidationResult{
					mathResult(approxEqual(d.CGST, half), "cgst", fmtf(half), fmtf(d.CGST), "Math: Tax Amount"),
					mathResult(approxEqual(d.SGST, half), "sgst", fmtf(half), fmtf(d.SGST), "Math: Tax Amount"),
				}
			},
		},
		{
			key: "math.grand_total", name: "Math: Grand Total",
			ruleType: domain.ValidationRuleSumCheck, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				expected := money.Sum(d.Subtotal, -d.Discount, d.CGST, d.SGST, d.IGST, d.RoundingOff, d.DeliveryCharges)
				passed := approxEqual(d.GrandTotal, expected)
				return []ValidationResult{mathResult(passed, "grandTotal", fmtf(expected), fmtf(d.GrandTotal), "Math: Grand Total")}
			},
		},
		{
			key: "math.round_off", name: "Math: Round Off",
			ruleType: domain.ValidationRuleSumCheck, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				passed := math.Abs(d.RoundingOff) <= 0.50
				msg := "Math: Round Off: within acceptable range"
				if !passed {
					msg = fmt.Sprintf("Math: Round Off: abs(%.2f) > 0.50", d.RoundingOff)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "roundingOff",
					ExpectedValue: "abs(roundingOff) <= 0.50", ActualValue: fmtf(d.RoundingOff), Message: msg,
				}}
			},
		},
		{
			key: "math.amount_in_words", name: "Math: Amount In Words",
			ruleType: domain.ValidationRuleSumCheck, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				if d.AmountInWords == "" {
					return skipped("amountInWords", "Math: Amount In Words", "field is empty")
				}
				expected := money.AmountInWords(d.GrandTotal)
				passed := strings.EqualFold(strings.Join(strings.Fields(d.AmountInWords), " "), expected)
				msg := "Math: Amount In Words: matches grand total"
				if !passed {
					msg = "Math: Amount In Words: does not match grand total"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "amountInWords",
					ExpectedValue: expected, ActualValue: d.AmountInWords, Message: msg,
				}}
			},
		},
	}
}
