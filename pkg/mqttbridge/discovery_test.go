package mqttbridge

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/simnode"
)

const bridgeFixtureJSON = `{
  "nodeId": 52,
  "status": 4,
  "ready": true,
  "name": "Wall Plug",
  "manufacturerId": 271,
  "productId": 4096,
  "productType": 1794,
  "firmwareVersion": "3.2",
  "commandClasses": [
    {"id": 37, "version": 1},
    {"id": 49, "version": 5},
    {"id": 112, "version": 1}
  ],
  "values": [
    {
      "endpoint": 0,
      "commandClass": 37,
      "property": "targetValue",
      "metadata": {"type": "boolean", "readable": true, "writeable": true, "label": "Switch"},
      "value": false
    },
    {
      "endpoint": 0,
      "commandClass": 49,
      "property": "Air temperature",
      "metadata": {
        "type": "number", "readable": true, "writeable": false,
        "min": -10, "max": 50, "unit": "°C", "label": "Air temperature"
      },
      "value": 21.5
    },
    {
      "endpoint": 0,
      "commandClass": 112,
      "property": 5,
      "metadata": {"type": "number", "readable": false, "writeable": true},
      "value": 1
    }
  ]
}`

func bridgeNode(t *testing.T) *simnode.SimNode {
	t.Helper()
	n, err := fixture.ParseJSON([]byte(bridgeFixtureJSON))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	return simnode.New(n)
}

func TestBuildDiscoveryMessages(t *testing.T) {
	cfg := DefaultConfig()
	node := bridgeNode(t)

	messages, err := BuildDiscoveryMessages(cfg, node)
	if err != nil {
		t.Fatalf("BuildDiscoveryMessages failed: %v", err)
	}

	// The write-only config parameter gets no entity.
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}

	byTopic := make(map[string]ConfigPayload)
	for _, m := range messages {
		var payload ConfigPayload
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			t.Fatalf("payload for %s is not valid JSON: %v", m.Topic, err)
		}
		byTopic[m.Topic] = payload
	}

	sw, ok := byTopic["homeassistant/switch/zwsim_52_0-37-targetvalue/config"]
	if !ok {
		t.Fatalf("switch config topic missing, got %v", topicsOf(messages))
	}
	if sw.Name != "Switch" {
		t.Errorf("switch name = %q, want Switch", sw.Name)
	}
	if sw.CommandTopic != "zwsim/node_52/0-37-targetvalue/set" {
		t.Errorf("command topic = %q", sw.CommandTopic)
	}
	if sw.PayloadOn != "ON" || sw.PayloadOff != "OFF" {
		t.Errorf("payload on/off = %q/%q, want ON/OFF", sw.PayloadOn, sw.PayloadOff)
	}

	sensorTopic := "homeassistant/sensor/zwsim_52_0-49-air_temperature/config"
	sensor, ok := byTopic[sensorTopic]
	if !ok {
		t.Fatalf("sensor config topic missing, got %v", topicsOf(messages))
	}
	if sensor.StateTopic != "zwsim/node_52/0-49-air_temperature/state" {
		t.Errorf("state topic = %q", sensor.StateTopic)
	}
	if sensor.CommandTopic != "" {
		t.Errorf("read-only sensor got command topic %q", sensor.CommandTopic)
	}
	if sensor.UnitOfMeasurement != "°C" {
		t.Errorf("unit = %q, want °C", sensor.UnitOfMeasurement)
	}
	if sensor.AvailabilityTopic != "zwsim/node_52/availability" {
		t.Errorf("availability topic = %q", sensor.AvailabilityTopic)
	}

	// Entities share one device block.
	if len(sw.Device.Identifiers) != 1 || sw.Device.Identifiers[0] != "zwsim_node_52" {
		t.Errorf("device identifiers = %v", sw.Device.Identifiers)
	}
	if sw.Device.Name != "Wall Plug" {
		t.Errorf("device name = %q, want Wall Plug", sw.Device.Name)
	}
	if sw.Device.SwVersion != "3.2" {
		t.Errorf("sw_version = %q, want 3.2", sw.Device.SwVersion)
	}
}

func topicsOf(messages []DiscoveryMessage) []string {
	var topics []string
	for _, m := range messages {
		topics = append(topics, m.Topic)
	}
	return topics
}

func TestComponent(t *testing.T) {
	tests := []struct {
		name string
		meta fixture.Metadata
		want string
	}{
		{"writeable boolean", fixture.Metadata{Type: fixture.TypeBoolean, Writeable: true}, "switch"},
		{"read-only boolean", fixture.Metadata{Type: fixture.TypeBoolean}, "binary_sensor"},
		{"writeable number", fixture.Metadata{Type: fixture.TypeNumber, Writeable: true}, "number"},
		{"read-only number", fixture.Metadata{Type: fixture.TypeNumber}, "sensor"},
		{"string", fixture.Metadata{Type: fixture.TypeString}, "sensor"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Component(tc.meta); got != tc.want {
				t.Errorf("Component = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNumberEntityCarriesBounds(t *testing.T) {
	data := strings.Replace(bridgeFixtureJSON,
		`"type": "number", "readable": false, "writeable": true`,
		`"type": "number", "readable": true, "writeable": true, "min": 0, "max": 99`, 1)

	n, err := fixture.ParseJSON([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	messages, err := BuildDiscoveryMessages(DefaultConfig(), simnode.New(n))
	if err != nil {
		t.Fatal(err)
	}

	for _, m := range messages {
		if !strings.HasPrefix(m.Topic, "homeassistant/number/") {
			continue
		}
		var payload ConfigPayload
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			t.Fatal(err)
		}
		if payload.Min == nil || *payload.Min != 0 || payload.Max == nil || *payload.Max != 99 {
			t.Errorf("number bounds = %v/%v, want 0/99", payload.Min, payload.Max)
		}
		if payload.CommandTopic == "" {
			t.Error("number entity missing command topic")
		}
		return
	}
	t.Fatalf("no number entity found in %v", topicsOf(messages))
}
