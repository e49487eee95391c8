// Package commandclass provides the Z-Wave command class registry: numeric
// identifiers, canonical names, and coarse categories.
//
// The tables cover the command classes that appear in node-state fixtures.
// They are descriptive only; no command class protocol behavior is
// implemented here.
package commandclass

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ID is a Z-Wave command class identifier (one byte on the wire).
type ID uint8

// Command class identifiers.
const (
	Basic                ID = 0x20
	ApplicationStatus    ID = 0x22
	SwitchBinary         ID = 0x25
	SwitchMultilevel     ID = 0x26
	SensorBinary         ID = 0x30
	SensorMultilevel     ID = 0x31
	Meter                ID = 0x32
	SwitchColor          ID = 0x33
	ThermostatMode       ID = 0x40
	ThermostatSetpoint   ID = 0x43
	ThermostatFanMode    ID = 0x44
	TransportService     ID = 0x55
	AssociationGroupInfo ID = 0x59
	DeviceResetLocally   ID = 0x5A
	CentralScene         ID = 0x5B
	ZWavePlusInfo        ID = 0x5E
	MultiChannel         ID = 0x60
	DoorLock             ID = 0x62
	UserCode             ID = 0x63
	BarrierOperator      ID = 0x66
	Supervision          ID = 0x6C
	Configuration        ID = 0x70
	Notification         ID = 0x71
	ManufacturerSpecific ID = 0x72
	Powerlevel           ID = 0x73
	Protection           ID = 0x75
	Lock                 ID = 0x76
	NodeNaming           ID = 0x77
	SoundSwitch          ID = 0x79
	FirmwareUpdateMD     ID = 0x7A
	Battery              ID = 0x80
	Clock                ID = 0x81
	WakeUp               ID = 0x84
	Association          ID = 0x85
	Version              ID = 0x86
	Indicator            ID = 0x87
	MultiChannelAssoc    ID = 0x8E
	Security             ID = 0x98
	Security2            ID = 0x9F
)

// Category is a coarse grouping of command classes.
type Category int

const (
	// CategoryUnknown is returned for unregistered command classes.
	CategoryUnknown Category = iota
	// CategoryApplication covers user-facing functionality (switches,
	// sensors, locks, thermostats).
	CategoryApplication
	// CategoryManagement covers node identity and maintenance.
	CategoryManagement
	// CategoryTransport covers encapsulation and security.
	CategoryTransport
)

func (c Category) String() string {
	switch c {
	case CategoryApplication:
		return "application"
	case CategoryManagement:
		return "management"
	case CategoryTransport:
		return "transport"
	default:
		return "unknown"
	}
}

type info struct {
	name     string
	category Category
}

var registry = map[ID]info{
	Basic:                {"Basic", CategoryApplication},
	ApplicationStatus:    {"Application Status", CategoryManagement},
	SwitchBinary:         {"Binary Switch", CategoryApplication},
	SwitchMultilevel:     {"Multilevel Switch", CategoryApplication},
	SensorBinary:         {"Binary Sensor", CategoryApplication},
	SensorMultilevel:     {"Multilevel Sensor", CategoryApplication},
	Meter:                {"Meter", CategoryApplication},
	SwitchColor:          {"Color Switch", CategoryApplication},
	ThermostatMode:       {"Thermostat Mode", CategoryApplication},
	ThermostatSetpoint:   {"Thermostat Setpoint", CategoryApplication},
	ThermostatFanMode:    {"Thermostat Fan Mode", CategoryApplication},
	TransportService:     {"Transport Service", CategoryTransport},
	AssociationGroupInfo: {"Association Group Information", CategoryManagement},
	DeviceResetLocally:   {"Device Reset Locally", CategoryManagement},
	CentralScene:         {"Central Scene", CategoryApplication},
	ZWavePlusInfo:        {"Z-Wave Plus Info", CategoryManagement},
	MultiChannel:         {"Multi Channel", CategoryTransport},
	DoorLock:             {"Door Lock", CategoryApplication},
	UserCode:             {"User Code", CategoryApplication},
	BarrierOperator:      {"Barrier Operator", CategoryApplication},
	Supervision:          {"Supervision", CategoryTransport},
	Configuration:        {"Configuration", CategoryApplication},
	Notification:         {"Notification", CategoryApplication},
	ManufacturerSpecific: {"Manufacturer Specific", CategoryManagement},
	Powerlevel:           {"Powerlevel", CategoryManagement},
	Protection:           {"Protection", CategoryApplication},
	Lock:                 {"Lock", CategoryApplication},
	NodeNaming:           {"Node Naming and Location", CategoryManagement},
	SoundSwitch:          {"Sound Switch", CategoryApplication},
	FirmwareUpdateMD:     {"Firmware Update Meta Data", CategoryManagement},
	Battery:              {"Battery", CategoryManagement},
	Clock:                {"Clock", CategoryApplication},
	WakeUp:               {"Wake Up", CategoryManagement},
	Association:          {"Association", CategoryManagement},
	Version:              {"Version", CategoryManagement},
	Indicator:            {"Indicator", CategoryApplication},
	MultiChannelAssoc:    {"Multi Channel Association", CategoryManagement},
	Security:             {"Security", CategoryTransport},
	Security2:            {"Security 2", CategoryTransport},
}

// nameIndex maps lowercase names to IDs, built once at init.
var nameIndex = func() map[string]ID {
	idx := make(map[string]ID, len(registry))
	for id, in := range registry {
		idx[strings.ToLower(in.name)] = id
	}
	return idx
}()

// Name returns the canonical name for a command class, or "Unknown (0xNN)"
// for unregistered identifiers.
func Name(id ID) string {
	if in, ok := registry[id]; ok {
		return in.name
	}
	return fmt.Sprintf("Unknown (0x%02X)", uint8(id))
}

// String returns the canonical name.
func (id ID) String() string { return Name(id) }

// IsKnown returns true if the command class is in the registry.
func IsKnown(id ID) bool {
	_, ok := registry[id]
	return ok
}

// CategoryOf returns the category for a command class.
func CategoryOf(id ID) Category {
	if in, ok := registry[id]; ok {
		return in.category
	}
	return CategoryUnknown
}

// Resolve resolves a command class from its canonical name (case-insensitive)
// or from a decimal/hex numeric string.
func Resolve(s string) (ID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if id, ok := nameIndex[strings.ToLower(s)]; ok {
		return id, true
	}

	var v uint64
	var err error
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 8)
	} else {
		v, err = strconv.ParseUint(s, 10, 8)
	}
	if err != nil {
		return 0, false
	}
	return ID(v), true
}

// All returns all registered command class IDs in ascending order.
func All() []ID {
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
