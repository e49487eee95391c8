package rules

import (
	"fmt"
	"regexp"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

// RegisterIdentityRules registers node identity rules with the given registry.
func RegisterIdentityRules(registry *lint.Registry[*fixture.Node]) {
	registry.Register(NewNODE001())
	registry.Register(NewNODE002())
	registry.Register(NewNODE003())
	registry.Register(NewNODE004())
}

// NODE001 checks that the node id is within the addressable range.
type NODE001 struct {
	*lint.BaseRule
}

func NewNODE001() *NODE001 {
	return &NODE001{
		BaseRule: lint.NewBaseRule("NODE-001", "node id in addressable range", "identity", lint.SeverityError),
	}
}

func (r *NODE001) Check(n *fixture.Node) []lint.Violation {
	if n.NodeID >= fixture.MinNodeID && n.NodeID <= fixture.MaxNodeID {
		return nil
	}
	return []lint.Violation{{
		RuleID:     r.ID(),
		Severity:   r.DefaultSeverity(),
		Message:    fmt.Sprintf("node id %d outside range %d..%d", n.NodeID, fixture.MinNodeID, fixture.MaxNodeID),
		Suggestion: "use a node id a Z-Wave controller could actually assign",
	}}
}

// NODE002 checks that product identifiers fit in 16 bits.
type NODE002 struct {
	*lint.BaseRule
}

func NewNODE002() *NODE002 {
	return &NODE002{
		BaseRule: lint.NewBaseRule("NODE-002", "product identifiers in uint16 range", "identity", lint.SeverityError),
	}
}

func (r *NODE002) Check(n *fixture.Node) []lint.Violation {
	var violations []lint.Violation

	check := func(name string, v int) {
		if v < 0 || v > 0xFFFF {
			violations = append(violations, lint.Violation{
				RuleID:   r.ID(),
				Severity: r.DefaultSeverity(),
				Message:  fmt.Sprintf("%s %d does not fit in 16 bits", name, v),
				Subjects: []string{name},
			})
		}
	}

	check("manufacturerId", n.ManufacturerID)
	check("productId", n.ProductID)
	check("productType", n.ProductType)

	return violations
}

// NODE003 checks that a dead node is not also marked ready.
type NODE003 struct {
	*lint.BaseRule
}

func NewNODE003() *NODE003 {
	return &NODE003{
		BaseRule: lint.NewBaseRule("NODE-003", "status consistent with ready flag", "identity", lint.SeverityWarning),
	}
}

func (r *NODE003) Check(n *fixture.Node) []lint.Violation {
	if n.Status == fixture.StatusDead && n.Ready {
		return []lint.Violation{{
			RuleID:   r.ID(),
			Severity: r.DefaultSeverity(),
			Message:  "node reports status dead but ready=true",
		}}
	}
	return nil
}

// firmwareVersionPattern matches "major.minor" with an optional patch part.
var firmwareVersionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// NODE004 checks the firmware version format.
type NODE004 struct {
	*lint.BaseRule
}

func NewNODE004() *NODE004 {
	return &NODE004{
		BaseRule: lint.NewBaseRule("NODE-004", "firmware version format", "identity", lint.SeverityWarning),
	}
}

func (r *NODE004) Check(n *fixture.Node) []lint.Violation {
	if n.FirmwareVersion == "" || firmwareVersionPattern.MatchString(n.FirmwareVersion) {
		return nil
	}
	return []lint.Violation{{
		RuleID:     r.ID(),
		Severity:   r.DefaultSeverity(),
		Message:    fmt.Sprintf("firmware version %q is not in major.minor[.patch] form", n.FirmwareVersion),
		Suggestion: "use the version string as reported by the device interview",
	}}
}
