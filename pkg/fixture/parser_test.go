package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFixtureJSON = `{
  "nodeId": 52,
  "index": 0,
  "status": 4,
  "ready": true,
  "isListening": true,
  "deviceClass": {
    "basic": {"key": 4, "label": "Routing Slave"},
    "generic": {"key": 16, "label": "Binary Switch"},
    "specific": {"key": 1, "label": "Binary Power Switch"}
  },
  "manufacturerId": 271,
  "productId": 4096,
  "productType": 1546,
  "firmwareVersion": "3.3",
  "name": "Wall Plug",
  "commandClasses": [
    {"id": 37, "name": "Binary Switch", "version": 1},
    {"id": 50, "name": "Meter", "version": 3},
    {"id": 114, "name": "Manufacturer Specific", "version": 2},
    {"id": 134, "name": "Version", "version": 2}
  ],
  "values": [
    {
      "endpoint": 0,
      "commandClass": 37,
      "commandClassName": "Binary Switch",
      "property": "currentValue",
      "propertyName": "currentValue",
      "metadata": {"type": "boolean", "readable": true, "writeable": false, "label": "Current value"},
      "value": false
    },
    {
      "endpoint": 0,
      "commandClass": 37,
      "property": "targetValue",
      "propertyName": "targetValue",
      "metadata": {"type": "boolean", "readable": true, "writeable": true, "label": "Target value"}
    },
    {
      "endpoint": 0,
      "commandClass": 50,
      "property": "value",
      "propertyKey": 65537,
      "propertyName": "value",
      "metadata": {"type": "number", "readable": true, "writeable": false, "min": 0, "unit": "kWh", "label": "Electric Consumption [kWh]"},
      "value": 12.34
    }
  ]
}`

func TestParseJSON(t *testing.T) {
	n, err := ParseJSON([]byte(sampleFixtureJSON))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	if n.NodeID != 52 {
		t.Errorf("expected nodeId=52, got %d", n.NodeID)
	}

	if n.Status != StatusAlive {
		t.Errorf("expected status alive, got %v", n.Status)
	}

	if !n.SupportsCommandClass(37) {
		t.Error("expected Binary Switch to be declared")
	}

	if n.CommandClassVersion(50) != 3 {
		t.Errorf("expected Meter version 3, got %d", n.CommandClassVersion(50))
	}

	if got := len(n.Values); got != 3 {
		t.Fatalf("expected 3 values, got %d", got)
	}
}

func TestParseJSON_ValueLookup(t *testing.T) {
	n, err := ParseJSON([]byte(sampleFixtureJSON))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	v, ok := n.ValueByString("0-37-currentValue")
	if !ok {
		t.Fatal("expected to find 0-37-currentValue")
	}
	if v.Metadata.Label != "Current value" {
		t.Errorf("unexpected label: %q", v.Metadata.Label)
	}
	if v.Current != false {
		t.Errorf("expected current value false, got %v", v.Current)
	}

	// Meter value with a property key.
	if _, ok := n.ValueByString("0-50-value-65537"); !ok {
		t.Error("expected to find 0-50-value-65537")
	}

	if _, ok := n.ValueByString("0-37-nope"); ok {
		t.Error("expected lookup miss for unknown property")
	}
}

func TestParseJSON_FillsCommandClassNames(t *testing.T) {
	n, err := ParseJSON([]byte(sampleFixtureJSON))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	// targetValue omitted commandClassName in the document.
	v, ok := n.ValueByString("0-37-targetValue")
	if !ok {
		t.Fatal("expected to find 0-37-targetValue")
	}
	if v.CommandClassName != "Binary Switch" {
		t.Errorf("expected filled command class name, got %q", v.CommandClassName)
	}
}

func TestParseJSON_MissingNodeID(t *testing.T) {
	_, err := ParseJSON([]byte(`{"commandClasses": [{"id": 37, "version": 1}], "values": []}`))
	if err == nil {
		t.Fatal("expected error for missing node id")
	}
	if !strings.Contains(err.Error(), "node id") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseJSON_NoCommandClasses(t *testing.T) {
	_, err := ParseJSON([]byte(`{"nodeId": 2, "values": []}`))
	if err == nil {
		t.Fatal("expected error for missing command classes")
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := ParseJSON([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected parse error")
	}
	le, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if le.Cause == nil {
		t.Error("expected wrapped cause")
	}
}

func TestParseYAML(t *testing.T) {
	input := `
nodeId: 7
status: 1
ready: true
manufacturerId: 134
productId: 2
productType: 3
commandClasses:
  - id: 0x31
    version: 5
values:
  - endpoint: 0
    commandClass: 0x31
    property: Air temperature
    metadata:
      type: number
      readable: true
      writeable: false
      unit: "°C"
      label: Air temperature
    value: 21.5
`
	n, err := ParseYAML([]byte(input))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}

	if n.Status != StatusAsleep {
		t.Errorf("expected asleep, got %v", n.Status)
	}

	v, ok := n.ValueByString("0-49-Air temperature")
	if !ok {
		t.Fatal("expected to find 0-49-Air temperature")
	}
	if v.Metadata.Unit != "°C" {
		t.Errorf("unexpected unit: %q", v.Metadata.Unit)
	}
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "node.json")
	if err := os.WriteFile(jsonPath, []byte(sampleFixtureJSON), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n.NodeID != 52 {
		t.Errorf("expected nodeId=52, got %d", n.NodeID)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	badPath := filepath.Join(dir, "node.txt")
	if err := os.WriteFile(badPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(badPath); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(sampleFixtureJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	nodes, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(nodes))
	}
}
