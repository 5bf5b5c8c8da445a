package document

import (
	"fmt"
	"strings"

	"docdesk/internal/domain"
)

func requiredCheck(fieldPath, value, ruleName string) ValidationResult {
	passed := strings.TrimSpace(value) != ""
	msg := fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is missing", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "non-empty", ActualValue: value, Message: msg,
	}
}

// RequiredRules returns the presence checks.
func RequiredRules() []*Rule {
	return []*Rule{
		{
			key: "req.document_number", name: "Required: Document Number",
			ruleType: domain.ValidationRuleRequired, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				return []ValidationResult{requiredCheck("documentNumber", d.DocumentNumber, "Required: Document Number")}
			},
		},
		{
			key: "req.date", name: "Required: Date",
			ruleType: domain.ValidationRuleRequired, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				return []ValidationResult{requiredCheck("date", d.Date, "Required: Date")}
			},
		},
		{
			key: "req.items", name: "Required: Line Items",
			ruleType: domain.ValidationRuleRequired, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				passed := len(d.Items) > 0
				msg := "Required: Line Items: document has line items"
				if !passed {
					msg = "Required: Line Items: document has no line items"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "items",
					ExpectedValue: ">= 1 item", ActualValue: fmt.Sprintf("%d items", len(d.Items)), Message: msg,
				}}
			},
		},
		{
			key: "req.counterparty", name: "Required: Counterparty",
			ruleType: domain.ValidationRuleRequired, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				path := "consignee.name"
				if d.DocumentType.UsesSupplier() {
					path = "supplier.name"
				}
				name := ""
				if p := d.Counterparty(); p != nil {
					name = p.Name
				}
				return []ValidationResult{requiredCheck(path, name, "Required: Counterparty")}
			},
		},
		{
			key: "req.status", name: "Required: Status",
			ruleType: domain.ValidationRuleRequired, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				passed := d.DocumentType.ValidStatus(d.Status)
				msg := fmt.Sprintf("Required: Status: %q is a valid %s status", d.Status, d.DocumentType)
				if !passed {
					msg = fmt.Sprintf("Required: Status: %q is not a valid %s status", d.Status, d.DocumentType)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "status",
					ExpectedValue: strings.Join(d.DocumentType.Statuses(), "|"), ActualValue: d.Status, Message: msg,
				}}
			},
		},
		{
			key: "req.item.description", name: "Required: Item Description",
			ruleType: domain.ValidationRuleRequired, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.Items))
				for i := range d.Items {
					fp := fmt.Sprintf("items[%d].description", i)
					results = append(results, requiredCheck(fp, d.Items[i].Description, "Required: Item Description"))
				}
				return results
			},
		},
	}
}
