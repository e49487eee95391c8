// Package discovery advertises running simulated nodes over mDNS.
//
// Each node is published as a _zwsim._tcp service instance whose TXT
// records carry the node identity (node ID, manufacturer and product
// identifiers, firmware version), so harness tooling on the local
// network can enumerate running simulators without configuration.
package discovery
