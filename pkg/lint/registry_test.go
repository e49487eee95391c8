package lint

import "testing"

// stubRule flags a document when it matches a fixed string.
type stubRule struct {
	*BaseRule
	match string
}

func newStubRule(id, category string, severity Severity, match string) *stubRule {
	return &stubRule{
		BaseRule: NewBaseRule(id, "stub "+id, category, severity),
		match:    match,
	}
}

func (r *stubRule) Check(doc string) []Violation {
	if doc != r.match {
		return nil
	}
	return []Violation{{
		RuleID:   r.ID(),
		Severity: r.DefaultSeverity(),
		Message:  "matched " + r.match,
		Subjects: []string{doc},
	}}
}

func newTestRegistry() *Registry[string] {
	registry := NewRegistry[string]()
	registry.Register(newStubRule("STUB-001", "content", SeverityError, "bad"))
	registry.Register(newStubRule("STUB-002", "content", SeverityWarning, "bad"))
	registry.Register(newStubRule("STUB-003", "schema", SeverityInfo, "bad"))
	return registry
}

func TestRegistryRunsEnabledRulesInOrder(t *testing.T) {
	registry := newTestRegistry()

	violations := registry.Run("bad")
	if len(violations) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(violations))
	}
	for i, want := range []string{"STUB-001", "STUB-002", "STUB-003"} {
		if violations[i].RuleID != want {
			t.Errorf("violation %d rule = %s, want %s", i, violations[i].RuleID, want)
		}
	}

	if violations := registry.Run("fine"); violations != nil {
		t.Errorf("expected no violations for clean document, got %v", violations)
	}
}

func TestRegistryDisableAndEnable(t *testing.T) {
	registry := newTestRegistry()

	registry.Disable("STUB-002")
	if registry.IsEnabled("STUB-002") {
		t.Error("expected STUB-002 to be disabled")
	}
	if got := len(registry.Run("bad")); got != 2 {
		t.Errorf("expected 2 violations with one rule disabled, got %d", got)
	}
	if registry.EnabledCount() != 2 {
		t.Errorf("EnabledCount = %d, want 2", registry.EnabledCount())
	}

	registry.Enable("STUB-002")
	if got := len(registry.Run("bad")); got != 3 {
		t.Errorf("expected 3 violations after re-enable, got %d", got)
	}
}

func TestRegistrySeverityOverride(t *testing.T) {
	registry := newTestRegistry()

	registry.SetSeverity("STUB-002", SeverityError)

	for _, v := range registry.Run("bad") {
		if v.RuleID == "STUB-002" && v.Severity != SeverityError {
			t.Errorf("STUB-002 severity = %s, want error", v.Severity)
		}
	}
}

func TestRegistryCategories(t *testing.T) {
	registry := newTestRegistry()

	cats := registry.Categories()
	if len(cats) != 2 || cats[0] != "content" || cats[1] != "schema" {
		t.Errorf("Categories = %v, want [content schema]", cats)
	}

	registry.DisableAll()
	if registry.EnabledCount() != 0 {
		t.Errorf("EnabledCount after DisableAll = %d", registry.EnabledCount())
	}

	registry.EnableCategory("schema")
	rules := registry.EnabledRules()
	if len(rules) != 1 || rules[0].ID() != "STUB-003" {
		t.Errorf("expected only STUB-003 enabled, got %d rules", len(rules))
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"Warning", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{"info", SeverityInfo, false},
		{"fatal", SeverityError, true},
	}

	for _, tt := range tests {
		got, err := ParseSeverity(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeverity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
