// Package document holds the built-in validation rules for canonical documents.
package document

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"docdesk/internal/domain"
)

// ValidationResult is the outcome of one check made by a rule.
type ValidationResult struct {
	Passed        bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}

// Rule is a built-in validation rule.
type Rule struct {
	key      string
	name     string
	ruleType domain.ValidationRuleType
	sev      domain.ValidationSeverity
	fn       func(*domain.DocumentData) []ValidationResult
}

func (r *Rule) Validate(_ context.Context, doc *domain.DocumentData) []ValidationResult {
	return r.fn(doc)
}
func (r *Rule) RuleKey() string                     { return r.key }
func (r *Rule) RuleName() string                    { return r.name }
func (r *Rule) RuleType() domain.ValidationRuleType { return r.ruleType }
func (r *Rule) Severity() domain.ValidationSeverity { return r.sev }

func skipped(fieldPath, ruleName, reason string) []ValidationResult {
	return []ValidationResult{{
		Passed: true, FieldPath: fieldPath,
		Message: fmt.Sprintf("%s: %s, skipping", ruleName, reason),
	}}
}

func regexCheck(fieldPath, value, pattern, ruleName string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: pattern, ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping format check", ruleName),
		}
	}
	passed := re.MatchString(strings.ToUpper(value))
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: pattern, ActualValue: value, Message: msg,
	}
}

func fmtf(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// parseDate tries the date layouts documents are commonly written in.
func parseDate(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02-01-2006",
		"02/01/2006",
		"2006/01/02",
		"02 Jan 2006",
		"2 Jan 2006",
		"Jan 02, 2006",
		"January 02, 2006",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %s", s)
}

// parties returns the document's party blocks keyed by field path prefix.
func parties(d *domain.DocumentData) []namedParty {
	var out []namedParty
	if d.Consignee != nil {
		out = append(out, namedParty{"consignee", d.Consignee})
	}
	if d.Buyer != nil {
		out = append(out, namedParty{"buyer", d.Buyer})
	}
	if d.Supplier != nil {
		out = append(out, namedParty{"supplier", d.Supplier})
	}
	return out
}

type namedParty struct {
	path  string
	party *domain.Party
}

// AllBuiltinRules returns every built-in rule for a seller in sellerStateCode.
func AllBuiltinRules(sellerStateCode string) []*Rule {
	req := RequiredRules()
	format := FormatRules()
	math := MathRules()
	xf := CrossFieldRules(sellerStateCode)

	all := make([]*Rule, 0, len(req)+len(format)+len(math)+len(xf))
	all = append(all, req...)
	all = append(all, format...)
	all = append(all, math...)
	all = append(all, xf...)
	return all
}
