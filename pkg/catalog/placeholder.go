package catalog

import (
	"regexp"
	"sort"
)

// placeholderPattern matches {name} placeholder tokens. Names follow the
// host convention: lowercase snake_case identifiers.
var placeholderPattern = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// bracePattern matches any single-brace token, including malformed names.
// Used by validation to spot tokens the host would not substitute.
var bracePattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Placeholders extracts the placeholder names from a message text,
// sorted and de-duplicated.
func Placeholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Render replaces {name} placeholders in text with values from vars.
// Placeholders without a value are left unchanged; the host performs
// the final substitution.
func Render(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}

	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		// Strip the surrounding braces to get the name.
		name := match[1 : len(match)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// malformedTokens returns brace tokens that are not valid placeholder
// names (empty, uppercase, leading digits, embedded spaces).
func malformedTokens(text string) []string {
	var bad []string
	for _, m := range bracePattern.FindAllStringSubmatch(text, -1) {
		if !placeholderPattern.MatchString(m[0]) {
			bad = append(bad, m[0])
		}
	}
	return bad
}

// placeholderSetsEqual reports whether two sorted placeholder name lists
// contain the same names.
func placeholderSetsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
