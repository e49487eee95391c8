// Package rules provides the validation rule set for node state fixtures.
//
// Rules are grouped by category: "identity" (node addressing and product
// identifiers), "capability" (command class declarations vs. exposed
// values), and "metadata" (per-value metadata sanity).
package rules

import (
	"github.com/zwsim-project/zwsim-go/pkg/fixture"
	"github.com/zwsim-project/zwsim-go/pkg/lint"
)

// RegisterAllRules registers all fixture validation rules with the given registry.
func RegisterAllRules(registry *lint.Registry[*fixture.Node]) {
	RegisterIdentityRules(registry)
	RegisterCapabilityRules(registry)
	RegisterMetadataRules(registry)
}

// NewDefaultRegistry creates a new registry with all rules registered.
func NewDefaultRegistry() *lint.Registry[*fixture.Node] {
	registry := lint.NewRegistry[*fixture.Node]()
	RegisterAllRules(registry)
	return registry
}
