// Package simnode runs a device fixture as a live simulated node.
//
// A SimNode wraps a fixture.Node in a concurrent value store. Reads and
// writes go through the value metadata: writes to read-only values are
// rejected, and written values are checked against the declared type,
// bounds, and enumerated states. Internal updates (the simulation side)
// bypass the writeable check the way a real device updates its own
// sensors.
//
// StateStore persists current values to a JSON file so a node resumes
// where it left off, and Stepper drives numeric sensor values on a
// ticker for demo and integration-test purposes.
package simnode
