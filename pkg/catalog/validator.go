package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

// Top-level sections the host's translation schema recognizes.
var knownSections = map[string]bool{
	"config":            true,
	"options":           true,
	"common":            true,
	"entity":            true,
	"selector":          true,
	"services":          true,
	"issues":            true,
	"device_automation": true,
}

// Groups recognized directly under a flow section (config/options).
var knownFlowGroups = map[string]bool{
	"step":         true,
	"error":        true,
	"abort":        true,
	"progress":     true,
	"flow_title":   true,
	"create_entry": true,
}

// Fields recognized under one step of a flow section
// (config.step.<step_id>.<field>).
var knownStepFields = map[string]bool{
	"title":            true,
	"description":      true,
	"data":             true,
	"data_description": true,
	"menu_options":     true,
	"sections":         true,
}

// keySegmentPattern matches one well-formed key segment.
var keySegmentPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)

// RegisterAllRules registers all catalog validation rules with the given
// registry.
func RegisterAllRules(registry *lint.Registry[*Catalog]) {
	registry.Register(NewCAT001())
	registry.Register(NewCAT002())
	registry.Register(NewCAT003())
	registry.Register(NewCAT004())
	registry.Register(NewCAT005())
	registry.Register(NewCAT006())
}

// NewDefaultRegistry creates a new registry with all catalog rules
// registered.
func NewDefaultRegistry() *lint.Registry[*Catalog] {
	registry := lint.NewRegistry[*Catalog]()
	RegisterAllRules(registry)
	return registry
}

// CAT001 checks that every message has non-empty text.
type CAT001 struct {
	*lint.BaseRule
}

func NewCAT001() *CAT001 {
	return &CAT001{
		BaseRule: lint.NewBaseRule("CAT-001", "messages non-empty", "content", lint.SeverityError),
	}
}

func (r *CAT001) Check(c *Catalog) []lint.Violation {
	var violations []lint.Violation

	for _, m := range c.Messages() {
		if strings.TrimSpace(m.Text) != "" {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  "empty translation string",
			Subjects: []string{m.Key},
		})
	}

	return violations
}

// CAT002 checks key segment formatting.
type CAT002 struct {
	*lint.BaseRule
}

func NewCAT002() *CAT002 {
	return &CAT002{
		BaseRule: lint.NewBaseRule("CAT-002", "key segments well-formed", "schema", lint.SeverityWarning),
	}
}

func (r *CAT002) Check(c *Catalog) []lint.Violation {
	var violations []lint.Violation

	for _, m := range c.Messages() {
		for _, seg := range strings.Split(m.Key, ".") {
			if keySegmentPattern.MatchString(seg) {
				continue
			}
			violations = append(violations, lint.Violation{
				RuleID:     r.ID(),
				Severity:   r.DefaultSeverity(),
				Message:    fmt.Sprintf("key segment %q is not lowercase snake_case", seg),
				Subjects:   []string{m.Key},
				Suggestion: "rename the segment to match the host's key convention",
			})
			break
		}
	}

	return violations
}

// CAT003 checks that top-level sections are known to the host schema.
type CAT003 struct {
	*lint.BaseRule
}

func NewCAT003() *CAT003 {
	return &CAT003{
		BaseRule: lint.NewBaseRule("CAT-003", "top-level sections known", "schema", lint.SeverityWarning),
	}
}

func (r *CAT003) Check(c *Catalog) []lint.Violation {
	var violations []lint.Violation

	reported := make(map[string]bool)
	for _, m := range c.Messages() {
		section, _, _ := strings.Cut(m.Key, ".")
		if knownSections[section] || reported[section] {
			continue
		}
		reported[section] = true
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("unknown top-level section %q", section),
			Subjects: []string{m.Key},
		})
	}

	return violations
}

// CAT004 checks the group level under config/options flow sections.
type CAT004 struct {
	*lint.BaseRule
}

func NewCAT004() *CAT004 {
	return &CAT004{
		BaseRule: lint.NewBaseRule("CAT-004", "flow groups known", "schema", lint.SeverityWarning),
	}
}

func (r *CAT004) Check(c *Catalog) []lint.Violation {
	var violations []lint.Violation

	reported := make(map[string]bool)
	for _, m := range c.Messages() {
		section, rest, ok := strings.Cut(m.Key, ".")
		if !ok || (section != "config" && section != "options") {
			continue
		}

		group, _, _ := strings.Cut(rest, ".")
		if knownFlowGroups[group] {
			continue
		}

		prefix := section + "." + group
		if reported[prefix] {
			continue
		}
		reported[prefix] = true
		violations = append(violations, lint.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("unknown flow group %q under %q", group, section),
			Subjects:   []string{m.Key},
			Suggestion: "expected step, error, abort, progress, flow_title, or create_entry",
		})
	}

	return violations
}

// CAT005 checks that brace tokens are valid placeholder names.
type CAT005 struct {
	*lint.BaseRule
}

func NewCAT005() *CAT005 {
	return &CAT005{
		BaseRule: lint.NewBaseRule("CAT-005", "placeholder tokens well-formed", "content", lint.SeverityError),
	}
}

func (r *CAT005) Check(c *Catalog) []lint.Violation {
	var violations []lint.Violation

	for _, m := range c.Messages() {
		for _, tok := range malformedTokens(m.Text) {
			violations = append(violations, lint.Violation{
				RuleID:     r.ID(),
				Severity:   r.DefaultSeverity(),
				Message:    fmt.Sprintf("malformed placeholder token %q", tok),
				Subjects:   []string{m.Key},
				Suggestion: "placeholder names are lowercase snake_case identifiers",
			})
		}
	}

	return violations
}

// CAT006 checks the field level under individual flow steps.
type CAT006 struct {
	*lint.BaseRule
}

func NewCAT006() *CAT006 {
	return &CAT006{
		BaseRule: lint.NewBaseRule("CAT-006", "step fields known", "schema", lint.SeverityWarning),
	}
}

func (r *CAT006) Check(c *Catalog) []lint.Violation {
	var violations []lint.Violation

	reported := make(map[string]bool)
	for _, m := range c.Messages() {
		section, rest, ok := strings.Cut(m.Key, ".")
		if !ok || (section != "config" && section != "options") {
			continue
		}

		group, rest, ok := strings.Cut(rest, ".")
		if !ok || group != "step" {
			continue
		}

		step, rest, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}

		field, _, _ := strings.Cut(rest, ".")
		if knownStepFields[field] {
			continue
		}

		prefix := section + ".step." + step + "." + field
		if reported[prefix] {
			continue
		}
		reported[prefix] = true
		violations = append(violations, lint.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("unknown field %q in step %q", field, step),
			Subjects:   []string{m.Key},
			Suggestion: "expected title, description, data, data_description, menu_options, or sections",
		})
	}

	return violations
}

// ValidationIssue is one validation finding for a catalog.
type ValidationIssue struct {
	Code    string
	Message string
	Key     string
}

func (e ValidationIssue) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationResult contains the results of catalog validation.
type ValidationResult struct {
	// Valid is true if the catalog passed all validation checks.
	Valid bool

	// Errors contains all validation errors.
	Errors []ValidationIssue

	// Warnings contains non-fatal issues.
	Warnings []ValidationIssue
}

// Validate runs a rule registry against a catalog. A nil registry runs
// the default rule set.
func Validate(c *Catalog, registry *lint.Registry[*Catalog], minSeverity lint.Severity) *ValidationResult {
	if registry == nil {
		registry = NewDefaultRegistry()
	}

	result := &ValidationResult{Valid: true}
	for _, v := range registry.Run(c) {
		if v.Severity > minSeverity {
			continue
		}

		key := ""
		if len(v.Subjects) > 0 {
			key = v.Subjects[0]
		}
		issue := ValidationIssue{Code: v.RuleID, Message: v.Message, Key: key}

		if v.Severity == lint.SeverityError {
			result.Errors = append(result.Errors, issue)
			result.Valid = false
		} else {
			result.Warnings = append(result.Warnings, issue)
		}
	}

	return result
}
