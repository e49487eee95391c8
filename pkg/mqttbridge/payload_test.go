package mqttbridge

import (
	"testing"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
)

func TestFormatStatePayload(t *testing.T) {
	boolean := fixture.Metadata{Type: fixture.TypeBoolean}
	number := fixture.Metadata{Type: fixture.TypeNumber}

	tests := []struct {
		name  string
		meta  fixture.Metadata
		value any
		want  string
	}{
		{"bool on", boolean, true, "ON"},
		{"bool off", boolean, false, "OFF"},
		{"float trims zeros", number, 21.50, "21.5"},
		{"integer number", number, float64(42), "42"},
		{"string passthrough", fixture.Metadata{Type: fixture.TypeString}, "idle", "idle"},
		{"nil is empty", number, nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatStatePayload(tc.meta, tc.value); got != tc.want {
				t.Errorf("FormatStatePayload = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseSetPayload(t *testing.T) {
	boolean := fixture.Metadata{Type: fixture.TypeBoolean}
	number := fixture.Metadata{Type: fixture.TypeNumber}
	str := fixture.Metadata{Type: fixture.TypeString}
	untyped := fixture.Metadata{Type: fixture.TypeAny}

	tests := []struct {
		name    string
		meta    fixture.Metadata
		payload string
		want    any
		wantErr bool
	}{
		{"ON", boolean, "ON", true, false},
		{"off lowercase", boolean, "off", false, false},
		{"numeric bool", boolean, "1", true, false},
		{"bad bool", boolean, "maybe", nil, true},
		{"number", number, "21.5", 21.5, false},
		{"padded number", number, " 42\n", 42.0, false},
		{"bad number", number, "warm", nil, true},
		{"string", str, "hello", "hello", false},
		{"untyped bool", untyped, "true", true, false},
		{"untyped number", untyped, "3.5", 3.5, false},
		{"untyped string", untyped, "text", "text", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSetPayload(tc.meta, []byte(tc.payload))
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseSetPayload(%q) = %v, want error", tc.payload, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSetPayload(%q) failed: %v", tc.payload, err)
			}
			if got != tc.want {
				t.Errorf("ParseSetPayload(%q) = %v (%T), want %v (%T)", tc.payload, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestTopics(t *testing.T) {
	id, err := fixture.ParseValueID("0-49-Air temperature")
	if err != nil {
		t.Fatal(err)
	}

	if got := StateTopic("zwsim", 52, id); got != "zwsim/node_52/0-49-air_temperature/state" {
		t.Errorf("StateTopic = %q", got)
	}
	if got := SetTopic("zwsim", 52, id); got != "zwsim/node_52/0-49-air_temperature/set" {
		t.Errorf("SetTopic = %q", got)
	}
	if got := AvailabilityTopic("zwsim", 52); got != "zwsim/node_52/availability" {
		t.Errorf("AvailabilityTopic = %q", got)
	}
}

func TestValueIDFromTopic(t *testing.T) {
	part, ok := valueIDFromTopic("zwsim", 52, "zwsim/node_52/0-37-targetvalue/set")
	if !ok || part != "0-37-targetvalue" {
		t.Errorf("valueIDFromTopic = %q, %v; want 0-37-targetvalue, true", part, ok)
	}

	for _, topic := range []string{
		"zwsim/node_52/0-37-targetvalue/state",
		"zwsim/node_53/0-37-targetvalue/set",
		"other/node_52/0-37-targetvalue/set",
	} {
		if _, ok := valueIDFromTopic("zwsim", 52, topic); ok {
			t.Errorf("valueIDFromTopic accepted %q", topic)
		}
	}
}
