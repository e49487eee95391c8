package commandclass

import "testing"

func TestName(t *testing.T) {
	if got := Name(SwitchBinary); got != "Binary Switch" {
		t.Errorf("Name(SwitchBinary) = %q", got)
	}
	if got := Name(ID(0x42)); got != "Unknown (0x42)" {
		t.Errorf("Name(0x42) = %q", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  ID
		ok    bool
	}{
		{"Binary Switch", SwitchBinary, true},
		{"binary switch", SwitchBinary, true},
		{"37", SwitchBinary, true},
		{"0x25", SwitchBinary, true},
		{"0X25", SwitchBinary, true},
		{" Meter ", Meter, true},
		{"", 0, false},
		{"Flux Capacitor", 0, false},
		{"999", 0, false},
	}

	for _, tt := range tests {
		got, ok := Resolve(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Resolve(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCategoryOf(t *testing.T) {
	if CategoryOf(Security2) != CategoryTransport {
		t.Error("Security 2 should be transport")
	}
	if CategoryOf(SensorMultilevel) != CategoryApplication {
		t.Error("Multilevel Sensor should be application")
	}
	if CategoryOf(Version) != CategoryManagement {
		t.Error("Version should be management")
	}
	if CategoryOf(ID(0x42)) != CategoryUnknown {
		t.Error("unregistered id should be unknown")
	}
}

func TestAll_SortedAndKnown(t *testing.T) {
	ids := All()
	if len(ids) == 0 {
		t.Fatal("expected registered command classes")
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("ids not strictly ascending at %d: %v", i, ids)
		}
	}
	for _, id := range ids {
		if !IsKnown(id) {
			t.Errorf("All() returned unknown id %v", id)
		}
	}
}
