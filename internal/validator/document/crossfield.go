package document

import (
	"fmt"
	"strings"

	"docdesk/internal/domain"
	"docdesk/internal/tax"
)

func gstinStateCheck(party, gstin, stateCode string) []ValidationResult {
	fieldPath := party + ".gstin"
	ruleName := "Cross-field: GSTIN-State Match"
	if gstin == "" || stateCode == "" {
		return skipped(fieldPath, ruleName, "fields missing")
	}
	if len(gstin) < 2 {
		return []ValidationResult{{
			Passed: false, FieldPath: fieldPath,
			ExpectedValue: fmt.Sprintf("GSTIN[0:2] == %s", stateCode),
			ActualValue:   gstin,
			Message:       fmt.Sprintf("%s: %s GSTIN too short", ruleName, party),
		}}
	}
	gstinState := gstin[:2]
	passed := gstinState == stateCode
	msg := fmt.Sprintf("%s: %s GSTIN state code matches", ruleName, party)
	if !passed {
		msg = fmt.Sprintf("%s: %s GSTIN prefix %s does not match stateCode %s", ruleName, party, gstinState, stateCode)
	}
	return []ValidationResult{{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: fmt.Sprintf("GSTIN[0:2] == %s", stateCode),
		ActualValue:   gstinState, Message: msg,
	}}
}

// CrossFieldRules returns the checks that relate fields to each other. The
// tax type rules decide intra- or inter-state against sellerStateCode.
func CrossFieldRules(sellerStateCode string) []*Rule {
	// Supply type is decided by the same rules the normalizer applies.
	gst := tax.DefaultRules()
	gst.SellerStateCode = sellerStateCode
	gst.SellerState, _ = tax.StateName(sellerStateCode)
	gst.DefaultBuyerStateCode = sellerStateCode

	return []*Rule{
		{
			key: "xf.party.gstin_state", name: "Cross-field: GSTIN-State Match",
			ruleType: domain.ValidationRuleCrossField, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				results := gstinStateCheck("company", d.Company.GSTIN, d.Company.StateCode)
				for _, p := range parties(d) {
					results = append(results, gstinStateCheck(p.path, p.party.GSTIN, p.party.StateCode)...)
				}
				return results
			},
		},
		{
			key: "xf.tax.exclusive", name: "Cross-field: Tax Exclusivity",
			ruleType: domain.ValidationRuleCrossField, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				intra := d.CGST != 0 || d.SGST != 0
				passed := !(intra && d.IGST != 0)
				msg := "Cross-field: Tax Exclusivity: only one of CGST+SGST or IGST is charged"
				if !passed {
					msg = "Cross-field: Tax Exclusivity: both CGST+SGST and IGST are charged"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "igst",
					ExpectedValue: "CGST+SGST xor IGST",
					ActualValue:   fmt.Sprintf("CGST=%.2f, SGST=%.2f, IGST=%.2f", d.CGST, d.SGST, d.IGST),
					Message:       msg,
				}}
			},
		},
		{
			key: "xf.tax.halves", name: "Cross-field: CGST Equals SGST",
			ruleType: domain.ValidationRuleCrossField, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				passed := approxEqual(d.CGST, d.SGST)
				return []ValidationResult{mathResult(passed, "sgst", fmtf(d.CGST), fmtf(d.SGST), "Cross-field: CGST Equals SGST")}
			},
		},
		{
			key: "xf.tax.type", name: "Cross-field: Tax Type",
			ruleType: domain.ValidationRuleCrossField, sev: domain.ValidationSeverityError,
			fn: func(d *domain.DocumentData) []ValidationResult {
				ruleName := "Cross-field: Tax Type"
				p := d.Counterparty()
				if p == nil || sellerStateCode == "" {
					return skipped("taxType", ruleName, "state codes missing")
				}
				place := tax.Place{StateCode: p.StateCode, State: p.State, GSTIN: p.GSTIN}
				if !gst.Known(place) {
					return skipped("taxType", ruleName, "state codes missing")
				}
				if d.TaxTotal() == 0 {
					return skipped("taxType", ruleName, "no tax charged")
				}
				if gst.Intrastate(place) {
					passed := d.IGST == 0
					msg := fmt.Sprintf("%s: same-state supply uses CGST+SGST", ruleName)
					if !passed {
						msg = fmt.Sprintf("%s: same-state supply should use CGST+SGST (not IGST)", ruleName)
					}
					return []ValidationResult{{
						Passed: passed, FieldPath: "igst",
						ExpectedValue: "CGST+SGST used, IGST=0",
						ActualValue:   fmt.Sprintf("IGST=%.2f", d.IGST), Message: msg,
					}}
				}
				passed := d.CGST == 0 && d.SGST == 0
				msg := fmt.Sprintf("%s: inter-state supply uses IGST", ruleName)
				if !passed {
					msg = fmt.Sprintf("%s: inter-state supply should use IGST (not CGST+SGST)", ruleName)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "cgst",
					ExpectedValue: "IGST used, CGST=SGST=0",
					ActualValue:   fmt.Sprintf("CGST=%.2f, SGST=%.2f", d.CGST, d.SGST), Message: msg,
				}}
			},
		},
		{
			key: "xf.parties.different_gstin", name: "Cross-field: Different Party GSTINs",
			ruleType: domain.ValidationRuleCrossField, sev: domain.ValidationSeverityWarning,
			fn: func(d *domain.DocumentData) []ValidationResult {
				ruleName := "Cross-field: Different Party GSTINs"
				p := d.Counterparty()
				if p == nil || d.Company.GSTIN == "" || p.GSTIN == "" {
					return skipped("company.gstin", ruleName, "GSTINs missing")
				}
				passed := !strings.EqualFold(d.Company.GSTIN, p.GSTIN)
				msg := ruleName + ": company and counterparty have different GSTINs"
				if !passed {
					msg = ruleName + ": company and counterparty have the same GSTIN"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "company.gstin",
					ExpectedValue: "company.gstin != counterparty.gstin",
					ActualValue:   fmt.Sprintf("company=%s, counterparty=%s", d.Company.GSTIN, p.GSTIN),
					Message:       msg,
				}}
			},
		},
	}
}
