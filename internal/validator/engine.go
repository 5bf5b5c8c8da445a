package validator

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"docdesk/internal/domain"
	"docdesk/internal/validator/document"
)

// ResultEntry is a failed check, tagged with the rule that produced it.
type ResultEntry struct {
	RuleKey       string                    `json:"ruleKey"`
	RuleName      string                    `json:"ruleName"`
	Severity      domain.ValidationSeverity `json:"severity"`
	FieldPath     string                    `json:"fieldPath"`
	ExpectedValue string                    `json:"expectedValue"`
	ActualValue   string                    `json:"actualValue"`
	Message       string                    `json:"message"`
}

// Summary counts checks by outcome.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// FieldStatus is the worst outcome recorded against one field path.
type FieldStatus struct {
	Status   domain.ValidationStatus `json:"status"`
	Messages []string                `json:"messages"`
}

// Report is the outcome of validating one document.
type Report struct {
	Status        domain.ValidationStatus `json:"status"`
	Summary       Summary                 `json:"summary"`
	Issues        []ResultEntry           `json:"issues"`
	FieldStatuses map[string]*FieldStatus `json:"fieldStatuses"`
}

// Engine orchestrates document validation.
type Engine struct {
	registry *Registry
	log      zerolog.Logger
}

// NewEngine creates a new validation engine.
func NewEngine(registry *Registry, log zerolog.Logger) *Engine {
	return &Engine{registry: registry, log: log.With().Str("component", "validator").Logger()}
}

// NewDefaultEngine creates an engine with every built-in rule registered.
func NewDefaultEngine(sellerStateCode string, log zerolog.Logger) *Engine {
	reg := NewRegistry()
	for _, r := range document.AllBuiltinRules(sellerStateCode) {
		reg.Register(r)
	}
	return NewEngine(reg, log)
}

// Validate runs every registered rule against doc.
func (e *Engine) Validate(ctx context.Context, doc *domain.DocumentData) *Report {
	report := &Report{
		Status:        domain.ValidationStatusValid,
		Issues:        []ResultEntry{},
		FieldStatuses: map[string]*FieldStatus{},
	}

	for _, v := range e.registry.All() {
		for _, r := range v.Validate(ctx, doc) {
			report.Summary.Total++
			if r.Passed {
				report.Summary.Passed++
				continue
			}
			report.Issues = append(report.Issues, ResultEntry{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				Severity:      v.Severity(),
				FieldPath:     r.FieldPath,
				ExpectedValue: r.ExpectedValue,
				ActualValue:   r.ActualValue,
				Message:       r.Message,
			})

			fieldStatus := domain.ValidationStatusWarning
			if v.Severity() == domain.ValidationSeverityError {
				report.Summary.Errors++
				fieldStatus = domain.ValidationStatusInvalid
				report.Status = domain.ValidationStatusInvalid
			} else {
				report.Summary.Warnings++
				if report.Status == domain.ValidationStatusValid {
					report.Status = domain.ValidationStatusWarning
				}
			}
			mergeFieldStatus(report.FieldStatuses, r.FieldPath, fieldStatus, r.Message)
		}
	}

	sort.SliceStable(report.Issues, func(i, j int) bool {
		return report.Issues[i].Severity == domain.ValidationSeverityError &&
			report.Issues[j].Severity != domain.ValidationSeverityError
	})

	e.log.Debug().
		Str("document_id", doc.ID).
		Str("document_number", doc.DocumentNumber).
		Str("status", string(report.Status)).
		Int("errors", report.Summary.Errors).
		Int("warnings", report.Summary.Warnings).
		Msg("document validated")
	return report
}

func mergeFieldStatus(m map[string]*FieldStatus, path string, status domain.ValidationStatus, msg string) {
	fs, ok := m[path]
	if !ok {
		fs = &FieldStatus{Status: status}
		m[path] = fs
	}
	if status == domain.ValidationStatusInvalid {
		fs.Status = status
	}
	fs.Messages = append(fs.Messages, msg)
}
