package mqttbridge

import (
	"encoding/json"
	"fmt"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/simnode"
)

// Device identifies the node in Home Assistant's device registry. All
// entities of one node share the same device block.
type Device struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Model        string   `json:"model,omitempty"`
	SwVersion    string   `json:"sw_version,omitempty"`
}

// ConfigPayload is a Home Assistant MQTT discovery config.
type ConfigPayload struct {
	Name              string   `json:"name"`
	UniqueID          string   `json:"unique_id"`
	StateTopic        string   `json:"state_topic"`
	CommandTopic      string   `json:"command_topic,omitempty"`
	AvailabilityTopic string   `json:"availability_topic,omitempty"`
	UnitOfMeasurement string   `json:"unit_of_measurement,omitempty"`
	Min               *float64 `json:"min,omitempty"`
	Max               *float64 `json:"max,omitempty"`
	PayloadOn         string   `json:"payload_on,omitempty"`
	PayloadOff        string   `json:"payload_off,omitempty"`
	Device            Device   `json:"device"`
}

// DiscoveryMessage pairs a discovery topic with its serialized payload.
type DiscoveryMessage struct {
	Topic   string
	Payload []byte
}

// Component returns the Home Assistant component for a value's metadata:
// switches and numbers for writeable values, binary sensors and sensors
// otherwise.
func Component(meta fixture.Metadata) string {
	switch meta.Type {
	case fixture.TypeBoolean:
		if meta.Writeable {
			return "switch"
		}
		return "binary_sensor"
	case fixture.TypeNumber:
		if meta.Writeable {
			return "number"
		}
		return "sensor"
	default:
		return "sensor"
	}
}

// BuildDiscoveryMessages builds the retained discovery configs for every
// readable value of a node.
func BuildDiscoveryMessages(cfg Config, node *simnode.SimNode) ([]DiscoveryMessage, error) {
	fx := node.Fixture()
	device := Device{
		Identifiers:  []string{fmt.Sprintf("zwsim_node_%d", fx.NodeID)},
		Name:         fx.DisplayName(),
		Manufacturer: fmt.Sprintf("0x%04x", fx.ManufacturerID),
		Model:        fmt.Sprintf("0x%04x:0x%04x", fx.ProductType, fx.ProductID),
		SwVersion:    fx.FirmwareVersion,
	}

	var messages []DiscoveryMessage
	for _, id := range node.ValueIDs() {
		meta, err := node.Metadata(id)
		if err != nil {
			return nil, err
		}
		if !meta.Readable {
			continue
		}

		objectID := fmt.Sprintf("zwsim_%d_%s", fx.NodeID, SanitizeTopicPart(id.String()))
		payload := ConfigPayload{
			Name:              entityName(meta, id),
			UniqueID:          objectID,
			StateTopic:        StateTopic(cfg.BaseTopic, fx.NodeID, id),
			AvailabilityTopic: AvailabilityTopic(cfg.BaseTopic, fx.NodeID),
			UnitOfMeasurement: meta.Unit,
			Device:            device,
		}

		component := Component(meta)
		if meta.Writeable {
			payload.CommandTopic = SetTopic(cfg.BaseTopic, fx.NodeID, id)
		}
		switch component {
		case "switch", "binary_sensor":
			payload.PayloadOn = "ON"
			payload.PayloadOff = "OFF"
		case "number":
			payload.Min = meta.Min
			payload.Max = meta.Max
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		messages = append(messages, DiscoveryMessage{
			Topic:   fmt.Sprintf("%s/%s/%s/config", cfg.DiscoveryPrefix, component, objectID),
			Payload: data,
		})
	}

	return messages, nil
}

// entityName prefers the metadata label, falling back to the value ID.
func entityName(meta fixture.Metadata, id fixture.ValueID) string {
	if meta.Label != "" {
		return meta.Label
	}
	return id.String()
}
