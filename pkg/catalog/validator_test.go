package catalog

import (
	"testing"

	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

func mustParse(t *testing.T, data string) *Catalog {
	t.Helper()
	c, err := ParseJSON("en", []byte(data))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	return c
}

func violationsFor(t *testing.T, rule lint.Rule[*Catalog], data string) []lint.Violation {
	t.Helper()
	return rule.Check(mustParse(t, data))
}

func TestCAT001EmptyText(t *testing.T) {
	vs := violationsFor(t, NewCAT001(), `{"config": {"abort": {"already_configured": "   "}}}`)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1", len(vs))
	}
	if vs[0].Subjects[0] != "config.abort.already_configured" {
		t.Errorf("subject = %q, want config.abort.already_configured", vs[0].Subjects[0])
	}

	if vs := violationsFor(t, NewCAT001(), `{"config": {"abort": {"already_configured": "Done"}}}`); len(vs) != 0 {
		t.Errorf("got %d violations on non-empty text, want 0", len(vs))
	}
}

func TestCAT002KeySegmentFormat(t *testing.T) {
	vs := violationsFor(t, NewCAT002(), `{"config": {"Step": {"user": {"title": "T"}}}}`)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1", len(vs))
	}

	if vs := violationsFor(t, NewCAT002(), `{"config": {"step": {"user_2": {"title": "T"}}}}`); len(vs) != 0 {
		t.Errorf("got %d violations on well-formed key, want 0", len(vs))
	}
}

func TestCAT003UnknownSection(t *testing.T) {
	vs := violationsFor(t, NewCAT003(), `{"configuration": {"a": "A", "b": "B"}}`)
	// Reported once per section, not per key.
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1", len(vs))
	}

	data := `{"config": {"a": "A"}, "entity": {"b": "B"}, "common": {"c": "C"}}`
	if vs := violationsFor(t, NewCAT003(), data); len(vs) != 0 {
		t.Errorf("got %d violations on known sections, want 0", len(vs))
	}
}

func TestCAT004UnknownFlowGroup(t *testing.T) {
	vs := violationsFor(t, NewCAT004(), `{"config": {"steps": {"user": {"title": "T"}}}}`)
	if len(vs) != 1 {
		t.Fatalf("got %d violations, want 1", len(vs))
	}

	data := `{
  "config": {"step": {"user": {"title": "T"}}, "error": {"x": "X"}, "flow_title": "F"},
  "entity": {"whatever": {"name": "N"}}
}`
	if vs := violationsFor(t, NewCAT004(), data); len(vs) != 0 {
		t.Errorf("got %d violations on known flow groups, want 0", len(vs))
	}
}

func TestCAT005MalformedTokens(t *testing.T) {
	vs := violationsFor(t, NewCAT005(), `{"config": {"error": {"bad": "Failed on {Host} at {}"}}}`)
	if len(vs) != 2 {
		t.Fatalf("got %d violations, want 2", len(vs))
	}

	if vs := violationsFor(t, NewCAT005(), `{"config": {"error": {"ok": "Failed on {host}"}}}`); len(vs) != 0 {
		t.Errorf("got %d violations on valid placeholders, want 0", len(vs))
	}
}

func TestCAT006UnknownStepField(t *testing.T) {
	data := `{"config": {"step": {"user": {"placeholder": {"host": "H"}, "titel": "T"}}}}`
	vs := violationsFor(t, NewCAT006(), data)
	if len(vs) != 2 {
		t.Fatalf("got %d violations, want 2", len(vs))
	}

	data = `{
  "config": {
    "step": {
      "user": {
        "title": "T",
        "description": "D",
        "data": {"host": "Host"},
        "data_description": {"host": "Hostname or IP"}
      }
    },
    "error": {"cannot_connect": "Failed"}
  }
}`
	if vs := violationsFor(t, NewCAT006(), data); len(vs) != 0 {
		t.Errorf("got %d violations on known step fields, want 0", len(vs))
	}
}

func TestValidateDefaults(t *testing.T) {
	c := mustParse(t, `{
  "config": {
    "step": {"user": {"title": "Connect to {host}"}},
    "abort": {"already_configured": "Already configured"}
  }
}`)

	result := Validate(c, nil, lint.SeverityInfo)
	if !result.Valid {
		t.Errorf("Valid = false, errors: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestValidateReportsErrorsAndWarnings(t *testing.T) {
	c := mustParse(t, `{
  "bogus_section": {"x": ""},
  "config": {"step": {"user": {"title": "OK"}}}
}`)

	result := Validate(c, nil, lint.SeverityInfo)
	if result.Valid {
		t.Error("Valid = true, want false")
	}
	if len(result.Errors) != 1 {
		t.Errorf("Errors = %v, want 1 (empty text)", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Warnings = %v, want 1 (unknown section)", result.Warnings)
	}

	// Error-only threshold drops the warning.
	result = Validate(c, nil, lint.SeverityError)
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none at error threshold", result.Warnings)
	}
}

func TestValidateCustomRegistry(t *testing.T) {
	registry := NewDefaultRegistry()
	registry.Disable("CAT-003")

	c := mustParse(t, `{"bogus_section": {"x": "X"}}`)
	result := Validate(c, registry, lint.SeverityInfo)
	if !result.Valid || len(result.Warnings) != 0 {
		t.Errorf("result = %+v, want clean with CAT-003 disabled", result)
	}
}
