package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeNodeTXT creates TXT records for a simulated node advertisement.
func EncodeNodeTXT(info *NodeInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	// Required fields
	txt[TXTKeyNodeID] = strconv.Itoa(info.NodeID)
	txt[TXTKeySession] = info.SessionID

	// Optional fields
	if info.Name != "" {
		txt[TXTKeyName] = info.Name
	}
	if info.ManufacturerID != 0 {
		txt[TXTKeyManuf] = fmt.Sprintf("0x%04x", info.ManufacturerID)
	}
	if info.ProductID != 0 {
		txt[TXTKeyProduct] = fmt.Sprintf("0x%04x", info.ProductID)
	}
	if info.ProductType != 0 {
		txt[TXTKeyProdType] = fmt.Sprintf("0x%04x", info.ProductType)
	}
	if info.FirmwareVersion != "" {
		txt[TXTKeyFirmware] = info.FirmwareVersion
	}
	if info.ValueCount > 0 {
		txt[TXTKeyValueCnt] = strconv.Itoa(info.ValueCount)
	}

	return txt
}

// DecodeNodeTXT parses TXT records from a simulated node advertisement.
func DecodeNodeTXT(txt TXTRecordMap) (*NodeInfo, error) {
	info := &NodeInfo{}

	// Parse node ID (required)
	idStr, ok := txt[TXTKeyNodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyNodeID)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 || id > 232 {
		return nil, fmt.Errorf("%w: node id %q", ErrInvalidTXTRecord, idStr)
	}
	info.NodeID = id

	// Parse session ID (required)
	info.SessionID, ok = txt[TXTKeySession]
	if !ok || info.SessionID == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeySession)
	}

	// Optional fields
	info.Name = txt[TXTKeyName]
	info.FirmwareVersion = txt[TXTKeyFirmware]
	info.ManufacturerID = parseHexField(txt[TXTKeyManuf])
	info.ProductID = parseHexField(txt[TXTKeyProduct])
	info.ProductType = parseHexField(txt[TXTKeyProdType])

	if vStr, ok := txt[TXTKeyValueCnt]; ok {
		if v, err := strconv.Atoi(vStr); err == nil && v >= 0 {
			info.ValueCount = v
		}
	}

	return info, nil
}

// parseHexField parses a 0x-prefixed identifier field. Malformed or
// absent fields decode as zero.
func parseHexField(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0
	}
	return int(n)
}

// TXTRecordsToStrings converts a TXTRecordMap to a slice of "key=value" strings.
// This format is commonly used by mDNS libraries.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInstanceNameTooLong)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
