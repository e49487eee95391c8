package rules

import (
	"fmt"
	"strconv"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

// RegisterMetadataRules registers value metadata rules with the given registry.
func RegisterMetadataRules(registry *lint.Registry[*fixture.Node]) {
	registry.Register(NewMETA001())
	registry.Register(NewMETA002())
	registry.Register(NewMETA003())
	registry.Register(NewMETA004())
	registry.Register(NewMETA005())
	registry.Register(NewMETA006())
	registry.Register(NewMETA007())
	registry.Register(NewMETA008())
	registry.Register(NewMETA009())
}

// META001 checks for duplicate value IDs.
type META001 struct {
	*lint.BaseRule
}

func NewMETA001() *META001 {
	return &META001{
		BaseRule: lint.NewBaseRule("META-001", "value IDs unique", "metadata", lint.SeverityError),
	}
}

func (r *META001) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	seen := make(map[string]bool, len(n.Values))
	for i := range n.Values {
		id := n.Values[i].ID().String()
		if seen[id] {
			violations = append(violations, lint.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("value ID %s appears more than once", id),
				Subjects: []string{id},
			})
		}
		seen[id] = true
	}

	return violations
}

// META002 checks that the metadata type is recognized.
type META002 struct {
	*lint.BaseRule
}

func NewMETA002() *META002 {
	return &META002{
		BaseRule: lint.NewBaseRule("META-002", "metadata type known", "metadata", lint.SeverityError),
	}
}

func (r *META002) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for i := range n.Values {
		v := &n.Values[i]
		if fixture.KnownType(v.Metadata.Type) {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("metadata type %q is not recognized", v.Metadata.Type),
			Subjects:   []string{v.ID().String()},
			Suggestion: "use one of: number, boolean, string, any",
		})
	}

	return violations
}

// META003 checks numeric bounds ordering.
type META003 struct {
	*lint.BaseRule
}

func NewMETA003() *META003 {
	return &META003{
		BaseRule: lint.NewBaseRule("META-003", "min does not exceed max", "metadata", lint.SeverityError),
	}
}

func (r *META003) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for i := range n.Values {
		v := &n.Values[i]
		m := v.Metadata
		if m.Min == nil || m.Max == nil || *m.Min <= *m.Max {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("min %v exceeds max %v", *m.Min, *m.Max),
			Subjects: []string{v.ID().String()},
		})
	}

	return violations
}

// META004 flags numeric bounds on non-numeric types.
type META004 struct {
	*lint.BaseRule
}

func NewMETA004() *META004 {
	return &META004{
		BaseRule: lint.NewBaseRule("META-004", "bounds only on numeric types", "metadata", lint.SeverityWarning),
	}
}

func (r *META004) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for i := range n.Values {
		v := &n.Values[i]
		m := v.Metadata
		if m.Type == fixture.TypeNumber || m.Type == fixture.TypeAny {
			continue
		}
		if m.Min == nil && m.Max == nil {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("min/max set on %s-typed value", m.Type),
			Subjects: []string{v.ID().String()},
		})
	}

	return violations
}

// META005 checks that enumerated state keys are numeric.
type META005 struct {
	*lint.BaseRule
}

func NewMETA005() *META005 {
	return &META005{
		BaseRule: lint.NewBaseRule("META-005", "state keys numeric", "metadata", lint.SeverityError),
	}
}

func (r *META005) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for i := range n.Values {
		v := &n.Values[i]
		for key, label := range v.Metadata.States {
			if _, err := strconv.ParseFloat(key, 64); err != nil {
				violations = append(violations, lint.Violation{
					RuleID:   r.ID(),
					Severity: r.DefaultSeverity(),
					Message:  fmt.Sprintf("state key %q is not numeric", key),
					Subjects: []string{v.ID().String()},
				})
			}
			if label == "" {
				violations = append(violations, lint.Violation{
					RuleID:   r.ID(),
					Severity: r.DefaultSeverity(),
					Message:  fmt.Sprintf("state %q has an empty label", key),
					Subjects: []string{v.ID().String()},
				})
			}
		}
	}

	return violations
}

// META006 flags values that are neither readable nor writeable.
type META006 struct {
	*lint.BaseRule
}

func NewMETA006() *META006 {
	return &META006{
		BaseRule: lint.NewBaseRule("META-006", "value accessible", "metadata", lint.SeverityWarning),
	}
}

func (r *META006) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for i := range n.Values {
		v := &n.Values[i]
		if v.Metadata.Readable || v.Metadata.Writeable {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    "value is neither readable nor writeable",
			Subjects:   []string{v.ID().String()},
			Suggestion: "set readable and/or writeable, or remove the value",
		})
	}

	return violations
}

// META007 flags values with no label.
type META007 struct {
	*lint.BaseRule
}

func NewMETA007() *META007 {
	return &META007{
		BaseRule: lint.NewBaseRule("META-007", "value labeled", "metadata", lint.SeverityInfo),
	}
}

func (r *META007) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for i := range n.Values {
		v := &n.Values[i]
		if v.Metadata.Label != "" {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  "value has no label",
			Subjects: []string{v.ID().String()},
		})
	}

	return violations
}

// META008 checks that the current value honors its own metadata.
type META008 struct {
	*lint.BaseRule
}

func NewMETA008() *META008 {
	return &META008{
		BaseRule: lint.NewBaseRule("META-008", "current value within metadata", "metadata", lint.SeverityError),
	}
}

func (r *META008) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	add := func(v *fixture.Value, msg string) {
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  msg,
			Subjects: []string{v.ID().String()},
		})
	}

	for i := range n.Values {
		v := &n.Values[i]
		if v.Current == nil {
			continue
		}

		switch v.Metadata.Type {
		case fixture.TypeBoolean:
			if _, ok := v.Current.(bool); !ok {
				add(v, fmt.Sprintf("current value %v is not a boolean", v.Current))
			}

		case fixture.TypeString:
			if _, ok := v.Current.(string); !ok {
				add(v, fmt.Sprintf("current value %v is not a string", v.Current))
			}

		case fixture.TypeNumber:
			f, ok := toFloat64(v.Current)
			if !ok {
				add(v, fmt.Sprintf("current value %v is not a number", v.Current))
				continue
			}
			if v.Metadata.Min != nil && f < *v.Metadata.Min {
				add(v, fmt.Sprintf("current value %v below min %v", f, *v.Metadata.Min))
			}
			if v.Metadata.Max != nil && f > *v.Metadata.Max {
				add(v, fmt.Sprintf("current value %v above max %v", f, *v.Metadata.Max))
			}
		}
	}

	return violations
}

// META009 checks that writeable values declare a concrete type.
// Writes cannot be validated against "any" or a missing type.
type META009 struct {
	*lint.BaseRule
}

func NewMETA009() *META009 {
	return &META009{
		BaseRule: lint.NewBaseRule("META-009", "writeable values typed", "metadata", lint.SeverityError),
	}
}

func (r *META009) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for i := range n.Values {
		v := &n.Values[i]
		if !v.Metadata.Writeable {
			continue
		}
		switch v.Metadata.Type {
		case fixture.TypeNumber, fixture.TypeBoolean, fixture.TypeString:
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("writeable value has no concrete type (got %q)", v.Metadata.Type),
			Subjects:   []string{v.ID().String()},
			Suggestion: "declare number, boolean, or string so writes can be validated",
		})
	}

	return violations
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
