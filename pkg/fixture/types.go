package fixture

import (
	"fmt"

	"github.com/zwsim-project/zwsim-go/pkg/commandclass"
)

// Node ID bounds for a Z-Wave network.
const (
	// MinNodeID is the lowest addressable node id.
	MinNodeID = 1

	// MaxNodeID is the highest addressable node id.
	MaxNodeID = 232
)

// NodeStatus reflects the node's reported liveness.
type NodeStatus int

const (
	StatusUnknown NodeStatus = 0
	StatusAsleep  NodeStatus = 1
	StatusAwake   NodeStatus = 2
	StatusDead    NodeStatus = 3
	StatusAlive   NodeStatus = 4
)

// String returns the status name.
func (s NodeStatus) String() string {
	switch s {
	case StatusAsleep:
		return "asleep"
	case StatusAwake:
		return "awake"
	case StatusDead:
		return "dead"
	case StatusAlive:
		return "alive"
	default:
		return "unknown"
	}
}

// DeviceClassEntry is one level of the node's device class triple.
type DeviceClassEntry struct {
	Key   int    `json:"key" yaml:"key"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DeviceClass describes the node's basic/generic/specific device class.
type DeviceClass struct {
	Basic    DeviceClassEntry `json:"basic" yaml:"basic"`
	Generic  DeviceClassEntry `json:"generic" yaml:"generic"`
	Specific DeviceClassEntry `json:"specific" yaml:"specific"`
}

// CommandClassInfo describes one command class the node declares.
type CommandClassInfo struct {
	ID       commandclass.ID `json:"id" yaml:"id"`
	Name     string          `json:"name,omitempty" yaml:"name,omitempty"`
	Version  int             `json:"version" yaml:"version"`
	IsSecure bool            `json:"isSecure,omitempty" yaml:"isSecure,omitempty"`
}

// Endpoint describes one node endpoint.
type Endpoint struct {
	Index       int          `json:"index" yaml:"index"`
	DeviceClass *DeviceClass `json:"deviceClass,omitempty" yaml:"deviceClass,omitempty"`
}

// DataType names for value metadata.
const (
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeString  = "string"
	TypeAny     = "any"
)

// KnownType returns true if t is a recognized metadata type name.
func KnownType(t string) bool {
	switch t {
	case TypeNumber, TypeBoolean, TypeString, TypeAny:
		return true
	default:
		return false
	}
}

// Metadata describes a value's properties as reported by the node.
type Metadata struct {
	// Type is the value data type (number, boolean, string, any).
	Type string `json:"type" yaml:"type"`

	// Readable indicates the value can be read from the node.
	Readable bool `json:"readable" yaml:"readable"`

	// Writeable indicates the value accepts writes.
	Writeable bool `json:"writeable" yaml:"writeable"`

	// Min is the minimum allowed value (numeric types only).
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`

	// Max is the maximum allowed value (numeric types only).
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Unit is the unit of measurement (e.g., "°C", "W", "%").
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty"`

	// Label is the human-readable value label.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Description is an optional longer description.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// States maps numeric state keys to display labels for enumerated values.
	States map[string]string `json:"states,omitempty" yaml:"states,omitempty"`
}

// Value is one property value exposed by the node.
type Value struct {
	Endpoint         int             `json:"endpoint" yaml:"endpoint"`
	CommandClass     commandclass.ID `json:"commandClass" yaml:"commandClass"`
	CommandClassName string          `json:"commandClassName,omitempty" yaml:"commandClassName,omitempty"`
	Property         PropertyID      `json:"property" yaml:"property"`
	PropertyKey      *PropertyID     `json:"propertyKey,omitempty" yaml:"propertyKey,omitempty"`
	PropertyName     string          `json:"propertyName,omitempty" yaml:"propertyName,omitempty"`
	Metadata         Metadata        `json:"metadata" yaml:"metadata"`
	Current          any             `json:"value,omitempty" yaml:"value,omitempty"`
}

// ID returns the canonical value ID for this value.
func (v *Value) ID() ValueID {
	id := ValueID{
		Endpoint:     v.Endpoint,
		CommandClass: v.CommandClass,
		Property:     v.Property,
	}
	if v.PropertyKey != nil {
		id.PropertyKey = v.PropertyKey
	}
	return id
}

// Node is a complete device state fixture for one simulated node.
type Node struct {
	NodeID          int                `json:"nodeId" yaml:"nodeId"`
	Index           int                `json:"index" yaml:"index"`
	Status          NodeStatus         `json:"status" yaml:"status"`
	Ready           bool               `json:"ready" yaml:"ready"`
	IsListening     bool               `json:"isListening,omitempty" yaml:"isListening,omitempty"`
	IsRouting       bool               `json:"isRouting,omitempty" yaml:"isRouting,omitempty"`
	DeviceClass     *DeviceClass       `json:"deviceClass,omitempty" yaml:"deviceClass,omitempty"`
	ManufacturerID  int                `json:"manufacturerId" yaml:"manufacturerId"`
	ProductID       int                `json:"productId" yaml:"productId"`
	ProductType     int                `json:"productType" yaml:"productType"`
	FirmwareVersion string             `json:"firmwareVersion,omitempty" yaml:"firmwareVersion,omitempty"`
	Name            string             `json:"name,omitempty" yaml:"name,omitempty"`
	Location        string             `json:"location,omitempty" yaml:"location,omitempty"`
	InterviewStage  string             `json:"interviewStage,omitempty" yaml:"interviewStage,omitempty"`
	Endpoints       []Endpoint         `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	CommandClasses  []CommandClassInfo `json:"commandClasses" yaml:"commandClasses"`
	Values          []Value            `json:"values" yaml:"values"`

	// byID caches value lookup by canonical value ID string.
	byID map[string]*Value
}

// Clone returns a deep copy of the node with a fresh lookup cache.
func (n *Node) Clone() *Node {
	clone := *n
	clone.byID = nil
	clone.Endpoints = append([]Endpoint(nil), n.Endpoints...)
	clone.CommandClasses = append([]CommandClassInfo(nil), n.CommandClasses...)
	clone.Values = append([]Value(nil), n.Values...)
	return &clone
}

// reindex rebuilds the value ID lookup cache.
func (n *Node) reindex() {
	n.byID = make(map[string]*Value, len(n.Values))
	for i := range n.Values {
		v := &n.Values[i]
		n.byID[v.ID().String()] = v
	}
}

// Value returns the value with the given canonical ID.
func (n *Node) Value(id ValueID) (*Value, bool) {
	if n.byID == nil {
		n.reindex()
	}
	v, ok := n.byID[id.String()]
	return v, ok
}

// ValueByString returns the value addressed by a value ID string.
func (n *Node) ValueByString(id string) (*Value, bool) {
	vid, err := ParseValueID(id)
	if err != nil {
		return nil, false
	}
	return n.Value(vid)
}

// ValuesFor returns all values belonging to a command class, in fixture order.
func (n *Node) ValuesFor(cc commandclass.ID) []*Value {
	var out []*Value
	for i := range n.Values {
		if n.Values[i].CommandClass == cc {
			out = append(out, &n.Values[i])
		}
	}
	return out
}

// SupportsCommandClass returns true if the node declares the command class.
func (n *Node) SupportsCommandClass(cc commandclass.ID) bool {
	for _, info := range n.CommandClasses {
		if info.ID == cc {
			return true
		}
	}
	return false
}

// CommandClassVersion returns the declared version for a command class,
// or 0 if the command class is not declared.
func (n *Node) CommandClassVersion(cc commandclass.ID) int {
	for _, info := range n.CommandClasses {
		if info.ID == cc {
			return info.Version
		}
	}
	return 0
}

// DisplayName returns the node name, falling back to a synthesized
// "Node NN" label.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("Node %d", n.NodeID)
}
