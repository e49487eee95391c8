package fixture

import (
	"fmt"

	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

// ValidationError represents a fixture validation error.
type ValidationError struct {
	Code    string
	Message string
	Subject string
}

func (e ValidationError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationResult contains the results of fixture validation.
type ValidationResult struct {
	// Valid is true if the fixture passed all validation checks.
	Valid bool

	// Errors contains all validation errors.
	Errors []ValidationError

	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(code, message, subject string) {
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: message, Subject: subject})
	r.Valid = false
}

// AddWarning adds a validation warning.
func (r *ValidationResult) AddWarning(code, message, subject string) {
	r.Warnings = append(r.Warnings, ValidationError{Code: code, Message: message, Subject: subject})
}

// ValidateOptions configures validation behavior.
type ValidateOptions struct {
	// Registry is the rule registry to run. Required.
	Registry *lint.Registry[*Node]

	// MinSeverity filters violations to only those at or above this severity.
	MinSeverity lint.Severity

	// DisabledRules is a list of rule IDs to disable.
	DisabledRules []string

	// EnabledCategories limits validation to rules in these categories.
	// If empty, all categories are included.
	EnabledCategories []string
}

// Validate runs a rule registry against a node fixture and folds the
// violations into a ValidationResult.
func Validate(n *Node, opts ValidateOptions) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if opts.Registry == nil {
		result.AddError("REGISTRY", "no rule registry configured", "")
		return result
	}

	for _, id := range opts.DisabledRules {
		opts.Registry.Disable(id)
	}

	if len(opts.EnabledCategories) > 0 {
		opts.Registry.DisableAll()
		for _, cat := range opts.EnabledCategories {
			opts.Registry.EnableCategory(cat)
		}
	}

	for _, v := range opts.Registry.Run(n) {
		if v.Severity > opts.MinSeverity {
			continue
		}

		subject := ""
		if len(v.Subjects) > 0 {
			subject = v.Subjects[0]
		}

		switch v.Severity {
		case lint.SeverityError:
			result.AddError(v.RuleID, v.Message, subject)
		default:
			result.AddWarning(v.RuleID, v.Message, subject)
		}
	}

	return result
}
