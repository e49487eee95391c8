package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/zwsim-project/zwsim-go/pkg/commandclass"
)

// Value ID errors.
var (
	ErrEmptyValueID   = errors.New("empty value ID")
	ErrInvalidValueID = errors.New("invalid value ID format")
)

// PropertyID is a value property identifier. The host format allows both
// strings ("currentValue", "Air temperature") and numbers (configuration
// parameter numbers), so both are representable.
type PropertyID struct {
	str   string
	num   int64
	isNum bool
}

// StringProperty creates a string property ID.
func StringProperty(s string) PropertyID {
	return PropertyID{str: s}
}

// NumericProperty creates a numeric property ID.
func NumericProperty(n int64) PropertyID {
	return PropertyID{num: n, isNum: true}
}

// IsNumeric returns true if the property is a number.
func (p PropertyID) IsNumeric() bool { return p.isNum }

// Int returns the numeric property value (0 for string properties).
func (p PropertyID) Int() int64 { return p.num }

// String returns the property as its canonical string token.
func (p PropertyID) String() string {
	if p.isNum {
		return strconv.FormatInt(p.num, 10)
	}
	return p.str
}

// Equal reports whether two property IDs address the same property.
func (p PropertyID) Equal(other PropertyID) bool {
	if p.isNum != other.isNum {
		return false
	}
	if p.isNum {
		return p.num == other.num
	}
	return p.str == other.str
}

// MarshalJSON emits a JSON number for numeric properties and a JSON string
// otherwise.
func (p PropertyID) MarshalJSON() ([]byte, error) {
	if p.isNum {
		return json.Marshal(p.num)
	}
	return json.Marshal(p.str)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (p *PropertyID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = NumericProperty(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("property must be a string or integer: %w", err)
	}
	*p = StringProperty(s)
	return nil
}

// MarshalCBOR emits a CBOR integer for numeric properties and a CBOR text
// string otherwise.
func (p PropertyID) MarshalCBOR() ([]byte, error) {
	if p.isNum {
		return cbor.Marshal(p.num)
	}
	return cbor.Marshal(p.str)
}

// UnmarshalCBOR accepts either a CBOR integer or a text string.
func (p *PropertyID) UnmarshalCBOR(data []byte) error {
	var n int64
	if err := cbor.Unmarshal(data, &n); err == nil {
		*p = NumericProperty(n)
		return nil
	}
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("property must be a string or integer: %w", err)
	}
	*p = StringProperty(s)
	return nil
}

// MarshalYAML mirrors the JSON representation.
func (p PropertyID) MarshalYAML() (any, error) {
	if p.isNum {
		return p.num, nil
	}
	return p.str, nil
}

// UnmarshalYAML accepts either a YAML integer or string scalar.
func (p *PropertyID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("property must be a scalar, got %v", node.Kind)
	}
	if node.Tag == "!!int" {
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("property: %w", err)
		}
		*p = NumericProperty(n)
		return nil
	}
	*p = StringProperty(node.Value)
	return nil
}

// parsePropertyToken turns a value ID path segment into a PropertyID,
// preferring numeric interpretation.
func parsePropertyToken(s string) PropertyID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NumericProperty(n)
	}
	return StringProperty(s)
}

// ValueID is the canonical address of one value on a node.
//
// String form: <endpoint>-<commandClass>-<property>[-<propertyKey>]
type ValueID struct {
	Endpoint     int
	CommandClass commandclass.ID
	Property     PropertyID
	PropertyKey  *PropertyID
}

// String returns the canonical value ID string. The command class is
// rendered in decimal, matching the host's dump format.
func (id ValueID) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(id.Endpoint))
	sb.WriteString("-")
	sb.WriteString(strconv.Itoa(int(id.CommandClass)))
	sb.WriteString("-")
	sb.WriteString(id.Property.String())
	if id.PropertyKey != nil {
		sb.WriteString("-")
		sb.WriteString(id.PropertyKey.String())
	}
	return sb.String()
}

// ParseValueID parses a canonical value ID string.
//
// The command class segment accepts decimal ("37"), hex ("0x25"), or a
// registered command class name ("Binary Switch"). Property segments must
// not themselves contain "-".
func ParseValueID(input string) (ValueID, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return ValueID{}, ErrEmptyValueID
	}

	parts := strings.Split(input, "-")
	if len(parts) < 3 || len(parts) > 4 {
		return ValueID{}, fmt.Errorf("%w: %q", ErrInvalidValueID, input)
	}

	ep, err := strconv.Atoi(parts[0])
	if err != nil || ep < 0 {
		return ValueID{}, fmt.Errorf("%w: bad endpoint %q", ErrInvalidValueID, parts[0])
	}

	cc, ok := commandclass.Resolve(parts[1])
	if !ok {
		return ValueID{}, fmt.Errorf("%w: bad command class %q", ErrInvalidValueID, parts[1])
	}

	id := ValueID{
		Endpoint:     ep,
		CommandClass: cc,
		Property:     parsePropertyToken(parts[2]),
	}

	if len(parts) == 4 {
		key := parsePropertyToken(parts[3])
		id.PropertyKey = &key
	}

	return id, nil
}
