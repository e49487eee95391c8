// Package catalog provides loading, lookup, and validation for localized
// UI-string tables (translation catalogs).
//
// A catalog is one locale's translation file: a nested JSON object whose
// leaves are human-readable strings, keyed by UI step and field identifiers
// (e.g. config -> step -> user -> data -> url). Catalogs are flattened to
// dotted key paths on load ("config.step.user.data.url") and looked up by
// those paths.
//
// Strings may contain placeholder tokens in single braces ("{host}") that
// the host application substitutes at render time. Render performs the same
// substitution for tooling purposes, leaving unknown tokens untouched.
//
// A Bundle groups the catalogs of several locales around a base locale
// (usually "en") whose key and placeholder sets act as the reference for
// coverage reporting.
package catalog
