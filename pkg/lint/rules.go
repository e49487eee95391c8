package lint

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a validation issue.
type Severity int

const (
	// SeverityError indicates a critical issue that makes the document invalid.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be addressed.
	SeverityWarning
	// SeverityInfo indicates an informational note or suggestion.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// ParseSeverity parses a severity name ("error", "warning", "info").
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity: %q", s)
	}
}

// Rule represents a validation rule that can be applied to a document of type T.
type Rule[T any] interface {
	// ID returns the unique identifier for this rule (e.g., "NODE-001").
	ID() string
	// Name returns a human-readable name for the rule.
	Name() string
	// Category returns the rule category (e.g., "identity", "metadata").
	Category() string
	// DefaultSeverity returns the default severity level.
	DefaultSeverity() Severity
	// Check applies the rule to a document and returns any violations.
	Check(doc T) []Violation
}

// Violation represents a single rule violation found during validation.
type Violation struct {
	// RuleID is the ID of the rule that was violated.
	RuleID string
	// Severity is the severity level of this violation.
	Severity Severity
	// Message describes what went wrong.
	Message string
	// Subjects lists the keys or value IDs involved in the violation.
	Subjects []string
	// Suggestion provides a suggested fix (if applicable).
	Suggestion string
}

// String returns a formatted string representation of the violation.
func (v Violation) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s: %s", v.RuleID, v.Severity, v.Message))

	if len(v.Subjects) > 0 {
		sb.WriteString(fmt.Sprintf(" (%s)", strings.Join(v.Subjects, ", ")))
	}

	if v.Suggestion != "" {
		sb.WriteString(fmt.Sprintf(" -> %s", v.Suggestion))
	}

	return sb.String()
}

// HasErrors returns true if any violation has severity Error.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FilterBySeverity returns violations at or above the given severity level.
func FilterBySeverity(violations []Violation, minSeverity Severity) []Violation {
	var filtered []Violation
	for _, v := range violations {
		if v.Severity <= minSeverity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// BaseRule provides the identity portion of a Rule implementation.
// Embed it and implement Check.
type BaseRule struct {
	id              string
	name            string
	category        string
	defaultSeverity Severity
}

// ID returns the rule ID.
func (r *BaseRule) ID() string { return r.id }

// Name returns the rule name.
func (r *BaseRule) Name() string { return r.name }

// Category returns the rule category.
func (r *BaseRule) Category() string { return r.category }

// DefaultSeverity returns the default severity.
func (r *BaseRule) DefaultSeverity() Severity { return r.defaultSeverity }

// NewBaseRule creates a new BaseRule with the given properties.
func NewBaseRule(id, name, category string, severity Severity) *BaseRule {
	return &BaseRule{
		id:              id,
		name:            name,
		category:        category,
		defaultSeverity: severity,
	}
}
