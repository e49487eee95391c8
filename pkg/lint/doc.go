// Package lint provides the shared validation rule machinery used by the
// fixture and catalog validators.
//
// A Rule checks one document and reports Violations. Rules are collected in
// a Registry, which supports enabling/disabling individual rules or whole
// categories and overriding severities. The registry is generic over the
// document type, so fixture rules and catalog rules share the same
// registration, filtering, and reporting behavior.
package lint
