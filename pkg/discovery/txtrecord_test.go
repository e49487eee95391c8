package discovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTXTRoundTrip(t *testing.T) {
	info := &NodeInfo{
		NodeID:          52,
		SessionID:       "6f2a9c7e-3b1d-4f7a-9c0e-1d2e3f4a5b6c",
		Name:            "Wall Plug",
		ManufacturerID:  0x010f,
		ProductID:       0x1000,
		ProductType:     0x0702,
		FirmwareVersion: "3.2",
		ValueCount:      12,
	}

	txt := EncodeNodeTXT(info)
	decoded, err := DecodeNodeTXT(txt)
	require.NoError(t, err)
	assert.Equal(t, info, decoded)
}

func TestNodeTXTOptionalFieldsOmitted(t *testing.T) {
	info := &NodeInfo{NodeID: 3, SessionID: "s"}

	txt := EncodeNodeTXT(info)
	assert.Len(t, txt, 2, "only id and session should be encoded")

	decoded, err := DecodeNodeTXT(txt)
	require.NoError(t, err)
	assert.Empty(t, decoded.Name)
	assert.Zero(t, decoded.ManufacturerID)
	assert.Zero(t, decoded.ValueCount)
}

func TestDecodeNodeTXTErrors(t *testing.T) {
	tests := []struct {
		name string
		txt  TXTRecordMap
		want error
	}{
		{"missing node id", TXTRecordMap{TXTKeySession: "s"}, ErrMissingRequired},
		{"missing session", TXTRecordMap{TXTKeyNodeID: "5"}, ErrMissingRequired},
		{"non-numeric node id", TXTRecordMap{TXTKeyNodeID: "abc", TXTKeySession: "s"}, ErrInvalidTXTRecord},
		{"node id zero", TXTRecordMap{TXTKeyNodeID: "0", TXTKeySession: "s"}, ErrInvalidTXTRecord},
		{"node id above range", TXTRecordMap{TXTKeyNodeID: "233", TXTKeySession: "s"}, ErrInvalidTXTRecord},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeNodeTXT(tc.txt)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecodeNodeTXTToleratesBadOptionalFields(t *testing.T) {
	txt := TXTRecordMap{
		TXTKeyNodeID:   "9",
		TXTKeySession:  "s",
		TXTKeyManuf:    "not-hex",
		TXTKeyValueCnt: "lots",
	}

	decoded, err := DecodeNodeTXT(txt)
	require.NoError(t, err)
	assert.Zero(t, decoded.ManufacturerID, "malformed manufacturer id should be dropped")
	assert.Zero(t, decoded.ValueCount, "malformed value count should be dropped")
}

func TestTXTRecordsToStringsRoundTrip(t *testing.T) {
	txt := TXTRecordMap{"id": "7", "name": "Plug", "flag": ""}

	strs := TXTRecordsToStrings(txt)
	require.Len(t, strs, 3)

	back := StringsToTXTRecords(strs)
	assert.Equal(t, "7", back["id"])
	assert.Equal(t, "Plug", back["name"])
	assert.Len(t, back, 3)
}

func TestStringsToTXTRecordsBareKey(t *testing.T) {
	txt := StringsToTXTRecords([]string{"secure"})
	v, ok := txt["secure"]
	require.True(t, ok, "bare key should be present")
	assert.Empty(t, v)
}

func TestInstanceName(t *testing.T) {
	name := InstanceName(&NodeInfo{NodeID: 7})
	assert.Equal(t, "zwsim-007", name)
	assert.NoError(t, ValidateInstanceName(name))
}

func TestValidateInstanceName(t *testing.T) {
	assert.Error(t, ValidateInstanceName(""), "empty name should be rejected")

	long := strings.Repeat("a", MaxInstanceNameLen+1)
	assert.ErrorIs(t, ValidateInstanceName(long), ErrInstanceNameTooLong)
}
