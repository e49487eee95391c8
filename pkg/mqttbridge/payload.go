package mqttbridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
)

// FormatStatePayload renders a current value for its state topic.
// Booleans use the ON/OFF convention; numbers are formatted without
// trailing zeros; everything else is printed as-is.
func FormatStatePayload(meta fixture.Metadata, value any) string {
	if value == nil {
		return ""
	}

	switch meta.Type {
	case fixture.TypeBoolean:
		if b, ok := value.(bool); ok && b {
			return "ON"
		}
		return "OFF"
	case fixture.TypeNumber:
		if f, ok := asFloat(value); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return fmt.Sprint(value)
}

// ParseSetPayload converts an inbound command payload to the value type
// the metadata declares.
func ParseSetPayload(meta fixture.Metadata, payload []byte) (any, error) {
	text := strings.TrimSpace(string(payload))

	switch meta.Type {
	case fixture.TypeBoolean:
		switch strings.ToUpper(text) {
		case "ON", "TRUE", "1":
			return true, nil
		case "OFF", "FALSE", "0":
			return false, nil
		default:
			return nil, fmt.Errorf("invalid boolean payload %q", text)
		}
	case fixture.TypeNumber:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number payload %q", text)
		}
		return f, nil
	case fixture.TypeString:
		return text, nil
	default:
		// Untyped values take whatever parses: boolean, number, then raw.
		switch strings.ToUpper(text) {
		case "ON", "TRUE":
			return true, nil
		case "OFF", "FALSE":
			return false, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f, nil
		}
		return text, nil
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
