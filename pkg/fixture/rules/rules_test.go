package rules

import (
	"testing"

	"github.com/zwsim-project/zwsim-go/pkg/commandclass"
	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

// baseNode returns a minimal valid fixture to mutate per test.
func baseNode() *fixture.Node {
	return &fixture.Node{
		NodeID:         5,
		Status:         fixture.StatusAlive,
		Ready:          true,
		ManufacturerID: 0x010F,
		ProductID:      0x1000,
		ProductType:    0x0600,
		CommandClasses: []fixture.CommandClassInfo{
			{ID: commandclass.SwitchBinary, Version: 1},
		},
		Values: []fixture.Value{
			{
				Endpoint:     0,
				CommandClass: commandclass.SwitchBinary,
				Property:     fixture.StringProperty("currentValue"),
				Metadata: fixture.Metadata{
					Type:     fixture.TypeBoolean,
					Readable: true,
					Label:    "Current value",
				},
				Current: false,
			},
		},
	}
}

func TestNODE001_NodeIDRange(t *testing.T) {
	rule := NewNODE001()

	n := baseNode()
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation for node id 5, got %v", v)
	}

	n.NodeID = 300
	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for node id 300, got %v", v)
	}

	n.NodeID = 0
	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for node id 0, got %v", v)
	}
}

func TestNODE002_ProductIdentifiers(t *testing.T) {
	rule := NewNODE002()

	n := baseNode()
	n.ManufacturerID = 0x1FFFF
	n.ProductID = -1

	violations := rule.Check(n)
	if len(violations) != 2 {
		t.Errorf("expected 2 violations, got %v", violations)
	}
}

func TestNODE003_DeadButReady(t *testing.T) {
	rule := NewNODE003()

	n := baseNode()
	n.Status = fixture.StatusDead
	n.Ready = true

	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for dead+ready, got %v", v)
	}

	n.Ready = false
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation for dead+not ready, got %v", v)
	}
}

func TestNODE004_FirmwareVersion(t *testing.T) {
	rule := NewNODE004()

	n := baseNode()
	for _, ok := range []string{"", "3.3", "1.2.3", "10.0"} {
		n.FirmwareVersion = ok
		if v := rule.Check(n); len(v) != 0 {
			t.Errorf("version %q: expected no violation, got %v", ok, v)
		}
	}

	for _, bad := range []string{"v3.3", "3", "3.3-beta"} {
		n.FirmwareVersion = bad
		if v := rule.Check(n); len(v) != 1 {
			t.Errorf("version %q: expected violation, got %v", bad, v)
		}
	}
}

func TestCAP001_UndeclaredCommandClass(t *testing.T) {
	rule := NewCAP001()

	n := baseNode()
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation, got %v", v)
	}

	n.Values = append(n.Values, fixture.Value{
		Endpoint:     0,
		CommandClass: commandclass.Meter,
		Property:     fixture.StringProperty("value"),
		Metadata:     fixture.Metadata{Type: fixture.TypeNumber, Readable: true},
	})

	violations := rule.Check(n)
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", violations)
	}
	if violations[0].Subjects[0] != "0-50-value" {
		t.Errorf("unexpected subject: %v", violations[0].Subjects)
	}
}

func TestCAP002_Version(t *testing.T) {
	rule := NewCAP002()

	n := baseNode()
	n.CommandClasses[0].Version = 0

	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for version 0, got %v", v)
	}
}

func TestCAP003_UnknownCommandClass(t *testing.T) {
	rule := NewCAP003()

	n := baseNode()
	n.CommandClasses = append(n.CommandClasses, fixture.CommandClassInfo{ID: 0x42, Version: 1})

	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for unknown 0x42, got %v", v)
	}
}

func TestCAP004_DuplicateDeclaration(t *testing.T) {
	rule := NewCAP004()

	n := baseNode()
	n.CommandClasses = append(n.CommandClasses, fixture.CommandClassInfo{ID: commandclass.SwitchBinary, Version: 2})

	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for duplicate declaration, got %v", v)
	}
}

func TestCAP005_SilentApplicationClass(t *testing.T) {
	rule := NewCAP005()

	n := baseNode()
	n.CommandClasses = append(n.CommandClasses,
		fixture.CommandClassInfo{ID: commandclass.Meter, Version: 3},
		fixture.CommandClassInfo{ID: commandclass.Version, Version: 2},
	)

	violations := rule.Check(n)
	// Meter is application-category with no values; Version is management
	// and exempt.
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", violations)
	}
}

func TestCAP006_EndpointDeclared(t *testing.T) {
	rule := NewCAP006()

	n := baseNode()
	// No endpoint list: rule not applicable.
	n.Values[0].Endpoint = 3
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation without endpoint list, got %v", v)
	}

	n.Endpoints = []fixture.Endpoint{{Index: 0}, {Index: 1}}
	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for endpoint 3, got %v", v)
	}
}

func TestMETA001_DuplicateValueIDs(t *testing.T) {
	rule := NewMETA001()

	n := baseNode()
	n.Values = append(n.Values, n.Values[0])

	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for duplicate value ID, got %v", v)
	}
}

func TestMETA002_UnknownType(t *testing.T) {
	rule := NewMETA002()

	n := baseNode()
	n.Values[0].Metadata.Type = "color"

	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for unknown type, got %v", v)
	}
}

func TestMETA003_BoundsOrdering(t *testing.T) {
	rule := NewMETA003()

	min, max := 10.0, 5.0
	n := baseNode()
	n.Values[0].Metadata.Type = fixture.TypeNumber
	n.Values[0].Metadata.Min = &min
	n.Values[0].Metadata.Max = &max

	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for min > max, got %v", v)
	}

	min = 0
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation for min <= max, got %v", v)
	}
}

func TestMETA005_StateKeys(t *testing.T) {
	rule := NewMETA005()

	n := baseNode()
	n.Values[0].Metadata.States = map[string]string{
		"0":   "off",
		"255": "on",
	}
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation, got %v", v)
	}

	n.Values[0].Metadata.States["on"] = "On"
	n.Values[0].Metadata.States["1"] = ""
	violations := rule.Check(n)
	if len(violations) != 2 {
		t.Errorf("expected 2 violations, got %v", violations)
	}
}

func TestMETA008_CurrentValue(t *testing.T) {
	rule := NewMETA008()

	min, max := 0.0, 99.0
	n := baseNode()
	n.Values[0].Metadata = fixture.Metadata{
		Type:     fixture.TypeNumber,
		Readable: true,
		Min:      &min,
		Max:      &max,
	}

	n.Values[0].Current = 150.0
	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for value above max, got %v", v)
	}

	n.Values[0].Current = 50.0
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation in range, got %v", v)
	}

	n.Values[0].Current = "high"
	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for non-number, got %v", v)
	}

	n.Values[0].Current = nil
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation for nil current, got %v", v)
	}
}

func TestMETA009_WriteableTyped(t *testing.T) {
	rule := NewMETA009()

	n := baseNode()
	n.Values[0].Metadata.Writeable = true
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation for writeable boolean, got %v", v)
	}

	n.Values[0].Metadata.Type = fixture.TypeAny
	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for writeable any, got %v", v)
	}

	n.Values[0].Metadata.Type = ""
	if v := rule.Check(n); len(v) != 1 {
		t.Errorf("expected violation for writeable untyped, got %v", v)
	}

	// Read-only values may stay untyped.
	n.Values[0].Metadata.Writeable = false
	n.Values[0].Metadata.Readable = true
	if v := rule.Check(n); len(v) != 0 {
		t.Errorf("expected no violation for read-only untyped, got %v", v)
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry()

	if registry.Count() == 0 {
		t.Fatal("expected rules registered")
	}
	if registry.Count() != registry.EnabledCount() {
		t.Error("expected all rules enabled by default")
	}

	cats := registry.Categories()
	want := map[string]bool{"identity": true, "capability": true, "metadata": true}
	for _, c := range cats {
		if !want[c] {
			t.Errorf("unexpected category %q", c)
		}
		delete(want, c)
	}
	if len(want) != 0 {
		t.Errorf("missing categories: %v", want)
	}

	// A clean node produces no error-severity violations.
	violations := registry.Run(baseNode())
	if lint.HasErrors(violations) {
		t.Errorf("expected no errors on clean node, got %v", violations)
	}
}
