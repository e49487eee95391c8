// Package fixture provides parsing, lookup, and validation for simulated
// Z-Wave node state fixtures.
//
// A fixture is a single document describing one addressable node: identity
// fields (node id, manufacturer/product ids, firmware version), the command
// classes the node declares, and the property values the node exposes, each
// with metadata (type, readable/writeable flags, numeric bounds, enumerated
// states). Fixtures follow the node dump shape produced by zwave-js and
// consumed by integration test harnesses.
//
// # Formats
//
// The native format is JSON. YAML is accepted as an authoring convenience
// and CBOR as a compact interchange encoding; all three round-trip through
// the same Node structure.
//
// # Value IDs
//
// Every value is addressed by a canonical value ID string:
//
//	<endpoint>-<commandClass>-<property>[-<propertyKey>]
//
// e.g. "0-37-currentValue" or "0-49-Air temperature". ParseValueID accepts
// decimal or hex command class numbers as well as registered command class
// names ("0/Binary Switch/currentValue" is not valid; names are only
// resolved inside the command class position).
//
// # Validation
//
// Validation runs rule sets from the rules subpackage through a
// lint.Registry. Basic shape checks (required fields, parseable document)
// are enforced at parse time; everything else is a rule.
package fixture
