package document

import (
	"fmt"
	"regexp"

	"docdesk/internal/domain"
	"docdesk/internal/tax"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	ifscPattern  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
)

func stateCodeCheck(fieldPath, value, ruleName string) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: "GST state code", ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping state code check", ruleName),
		}
	}
	passed := tax.ValidStateCode(value)
	msg := fmt.Sprintf("%s: %s is a valid state code", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is not a known GST state code", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "GST state code", ActualValue: value, Message: msg,
	}
}

func dateCheck(fieldPath, value, ruleName string) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: "parseable date", ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping date check", ruleName),
		}
	}
	_, err := parseDate(value)
	passed := err == nil
	msg := fmt.Sprintf("%s: %s is a valid date", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is not a parseable date", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "parseable date", ActualValue: value, Message: msg,
	}
}

// FormatRules returns the field format checks.
func FormatRules() []*Rule {
	return []*Rule{
		{
			key: "fmt.company.gstin", name: "Format: Company GSTIN",
			ruleType: domain.ValidationRuleRegex, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				return []ValidationResult{regexCheck("company.gstin", d.Company.GSTIN, "15-char GSTIN format", "Format: Company GSTIN", gstinPattern)}
			},
		},
		{
			key: "fmt.company.pan", name: "Format: Company PAN",
			ruleType: domain.ValidationRuleRegex, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				return []ValidationResult{regexCheck("company.pan", d.Company.PAN, "10-char PAN format", "Format: Company PAN", panPattern)}
			},
		},
		{
			key: "fmt.company.ifsc", name: "Format: Company IFSC",
			ruleType: domain.ValidationRuleRegex, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				return []ValidationResult{regexCheck("company.ifsc", d.Company.IFSC, "11-char IFSC format", "Format: Company IFSC", ifscPattern)}
			},
		},
		{
			key: "fmt.party.gstin", name: "Format: Party GSTIN",
			ruleType: domain.ValidationRuleRegex, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				var results []ValidationResult
				for _, p := range parties(d) {
					results = append(results, regexCheck(p.path+".gstin", p.party.GSTIN, "15-char GSTIN format", "Format: Party GSTIN", gstinPattern))
				}
				return results
			},
		},
		{
			key: "fmt.party.state_code", name: "Format: Party State Code",
			ruleType: domain.ValidationRuleRegex, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				var results []ValidationResult
				for _, p := range parties(d) {
					results = append(results, stateCodeCheck(p.path+".stateCode", p.party.StateCode, "Format: Party State Code"))
				}
				return results
			},
		},
		{
			key: "fmt.date", name: "Format: Date",
			ruleType: domain.ValidationRuleRegex, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				return []ValidationResult{dateCheck("date", d.Date, "Format: Date")}
			},
		},
		{
			key: "fmt.item.hsn_sac", name: "Format: Item HSN/SAC",
			ruleType: domain.ValidationRuleRegex, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.Items))
				for i := range d.Items {
					fp := fmt.Sprintf("items[%d].hsnSac", i)
					results = append(results, regexCheck(fp, d.Items[i].HSNSAC, "4-8 digit HSN/SAC", "Format: Item HSN/SAC", hsnPattern))
				}
				return results
			},
		},
	}
}
