// Package validator runs the built-in document rules and summarizes the outcome.
package validator

import (
	"context"

	"docdesk/internal/domain"
	"docdesk/internal/validator/document"
)

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(ctx context.Context, doc *domain.DocumentData) []document.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}
