package discovery

import "errors"

// Service constants.
const (
	// ServiceType is the mDNS service type for simulated nodes.
	ServiceType = "_zwsim._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is the default service port.
	DefaultPort = 3000

	// MaxInstanceNameLen is the maximum mDNS instance name length.
	MaxInstanceNameLen = 63
)

// TXT record keys.
const (
	TXTKeyNodeID   = "id"
	TXTKeySession  = "session"
	TXTKeyName     = "name"
	TXTKeyManuf    = "manuf"
	TXTKeyProduct  = "prod"
	TXTKeyProdType = "ptype"
	TXTKeyFirmware = "fw"
	TXTKeyValueCnt = "values"
)

// Discovery errors.
var (
	ErrMissingRequired     = errors.New("missing required TXT record")
	ErrInvalidTXTRecord    = errors.New("invalid TXT record")
	ErrNotFound            = errors.New("service not found")
	ErrInstanceNameTooLong = errors.New("instance name too long")
)

// NodeInfo describes one advertised simulated node.
type NodeInfo struct {
	// NodeID is the node's network identifier (required).
	NodeID int

	// SessionID identifies the simulation run (required).
	SessionID string

	// Name is the node's display name.
	Name string

	// ManufacturerID, ProductID and ProductType identify the emulated
	// hardware.
	ManufacturerID int
	ProductID      int
	ProductType    int

	// FirmwareVersion is the emulated firmware version string.
	FirmwareVersion string

	// ValueCount is the number of values the node exposes.
	ValueCount int

	// Port is the service port. Zero means DefaultPort.
	Port uint16
}
