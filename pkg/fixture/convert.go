package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a fixture encoding.
type Format string

const (
	// FormatJSON is the host's native fixture format.
	FormatJSON Format = "json"

	// FormatYAML is the authoring format.
	FormatYAML Format = "yaml"

	// FormatCBOR is the compact interchange format.
	FormatCBOR Format = "cbor"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatCBOR:
		return Format(s), nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s (supported: json, yaml, cbor)", s)
	}
}

// Encode serializes a node fixture in the given format.
func Encode(n *Node, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(n, "", "  ")
	case FormatYAML:
		return yaml.Marshal(n)
	case FormatCBOR:
		return cbor.Marshal(n)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// Decode parses a node fixture in the given format.
func Decode(data []byte, format Format) (*Node, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatCBOR:
		var n Node
		if err := cbor.Unmarshal(data, &n); err != nil {
			return nil, &LoadError{
				Message: "failed to parse CBOR",
				Cause:   err,
			}
		}
		return finishParse(&n)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
