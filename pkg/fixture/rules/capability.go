package rules

import (
	"fmt"

	"github.com/zwsim-project/zwsim-go/pkg/commandclass"
	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

// RegisterCapabilityRules registers command class capability rules with the
// given registry.
func RegisterCapabilityRules(registry *lint.Registry[*fixture.Node]) {
	registry.Register(NewCAP001())
	registry.Register(NewCAP002())
	registry.Register(NewCAP003())
	registry.Register(NewCAP004())
	registry.Register(NewCAP005())
	registry.Register(NewCAP006())
}

// CAP001 checks that every value references a declared command class.
type CAP001 struct {
	*lint.BaseRule
}

func NewCAP001() *CAP001 {
	return &CAP001{
		BaseRule: lint.NewBaseRule("CAP-001", "values reference declared command classes", "capability", lint.SeverityError),
	}
}

func (r *CAP001) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for i := range n.Values {
		v := &n.Values[i]
		if n.SupportsCommandClass(v.CommandClass) {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("value uses command class %s (0x%02X) which the node does not declare", commandclass.Name(v.CommandClass), uint8(v.CommandClass)),
			Subjects:   []string{v.ID().String()},
			Suggestion: "add the command class to commandClasses or remove the value",
		})
	}

	return violations
}

// CAP002 checks that declared command class versions are at least 1.
type CAP002 struct {
	*lint.BaseRule
}

func NewCAP002() *CAP002 {
	return &CAP002{
		BaseRule: lint.NewBaseRule("CAP-002", "command class version declared", "capability", lint.SeverityError),
	}
}

func (r *CAP002) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for _, info := range n.CommandClasses {
		if info.Version >= 1 {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("command class %s declares version %d", commandclass.Name(info.ID), info.Version),
			Subjects: []string{commandclass.Name(info.ID)},
		})
	}

	return violations
}

// CAP003 flags command class ids not present in the registry.
type CAP003 struct {
	*lint.BaseRule
}

func NewCAP003() *CAP003 {
	return &CAP003{
		BaseRule: lint.NewBaseRule("CAP-003", "command class ids known", "capability", lint.SeverityWarning),
	}
}

func (r *CAP003) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for _, info := range n.CommandClasses {
		if commandclass.IsKnown(info.ID) {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("command class 0x%02X is not in the registry", uint8(info.ID)),
		})
	}

	return violations
}

// CAP004 checks for duplicate command class declarations.
type CAP004 struct {
	*lint.BaseRule
}

func NewCAP004() *CAP004 {
	return &CAP004{
		BaseRule: lint.NewBaseRule("CAP-004", "no duplicate command class declarations", "capability", lint.SeverityError),
	}
}

func (r *CAP004) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	seen := make(map[commandclass.ID]bool)
	for _, info := range n.CommandClasses {
		if seen[info.ID] {
			violations = append(violations, lint.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("command class %s declared more than once", commandclass.Name(info.ID)),
				Subjects: []string{commandclass.Name(info.ID)},
			})
		}
		seen[info.ID] = true
	}

	return violations
}

// CAP005 flags declared application command classes that expose no values.
type CAP005 struct {
	*lint.BaseRule
}

func NewCAP005() *CAP005 {
	return &CAP005{
		BaseRule: lint.NewBaseRule("CAP-005", "application command classes expose values", "capability", lint.SeverityInfo),
	}
}

func (r *CAP005) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	for _, info := range n.CommandClasses {
		if commandclass.CategoryOf(info.ID) != commandclass.CategoryApplication {
			continue
		}
		if len(n.ValuesFor(info.ID)) > 0 {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:     r.ID(),
			Severity:   r.DefaultSeverity(),
			Message:    fmt.Sprintf("application command class %s declares no values", commandclass.Name(info.ID)),
			Subjects:   []string{commandclass.Name(info.ID)},
			Suggestion: "add the values the class would report, or drop the declaration",
		})
	}

	return violations
}

// CAP006 checks that value endpoints exist when the fixture lists endpoints.
type CAP006 struct {
	*lint.BaseRule
}

func NewCAP006() *CAP006 {
	return &CAP006{
		BaseRule: lint.NewBaseRule("CAP-006", "value endpoints declared", "capability", lint.SeverityWarning),
	}
}

func (r *CAP006) Check(n *fixture.Node) []lint.Violation {
	if len(n.Endpoints) == 0 {
		// Endpoint 0 is implicit when the fixture omits the endpoint list.
		return nil
	}

	declared := make(map[int]bool, len(n.Endpoints))
	for _, ep := range n.Endpoints {
		declared[ep.Index] = true
	}

	var violations []lint.Violation
	for i := range n.Values {
		v := &n.Values[i]
		if declared[v.Endpoint] {
			continue
		}
		violations = append(violations, lint.Violation{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  fmt.Sprintf("value addresses endpoint %d which is not in the endpoint list", v.Endpoint),
			Subjects: []string{v.ID().String()},
		})
	}

	return violations
}
