package lint

import (
	"sort"
	"sync"
)

// Registry manages validation rules for documents of type T.
type Registry[T any] struct {
	mu        sync.RWMutex
	rules     map[string]Rule[T]
	enabled   map[string]bool
	severity  map[string]Severity
	ruleOrder []string // Maintain insertion order for deterministic iteration
}

// NewRegistry creates a new empty rule registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		rules:     make(map[string]Rule[T]),
		enabled:   make(map[string]bool),
		severity:  make(map[string]Severity),
		ruleOrder: make([]string, 0),
	}
}

// Register adds a rule to the registry.
// The rule is enabled by default with its default severity.
func (r *Registry[T]) Register(rule Rule[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if _, exists := r.rules[id]; !exists {
		r.ruleOrder = append(r.ruleOrder, id)
	}
	r.rules[id] = rule
	r.enabled[id] = true
	r.severity[id] = rule.DefaultSeverity()
}

// Enable enables a rule by ID.
func (r *Registry[T]) Enable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[id] = true
}

// Disable disables a rule by ID.
func (r *Registry[T]) Disable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[id] = false
}

// SetSeverity overrides the severity for a rule.
func (r *Registry[T]) SetSeverity(id string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.severity[id] = severity
}

// IsEnabled returns true if the rule is enabled.
func (r *Registry[T]) IsEnabled(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[id]
}

// GetSeverity returns the effective severity for a rule.
func (r *Registry[T]) GetSeverity(id string) Severity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sev, ok := r.severity[id]; ok {
		return sev
	}
	if rule, ok := r.rules[id]; ok {
		return rule.DefaultSeverity()
	}
	return SeverityError
}

// GetRule returns a rule by ID, or nil if not found.
func (r *Registry[T]) GetRule(id string) Rule[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[id]
}

// EnabledRules returns all enabled rules in registration order.
func (r *Registry[T]) EnabledRules() []Rule[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rules []Rule[T]
	for _, id := range r.ruleOrder {
		if r.enabled[id] {
			rules = append(rules, r.rules[id])
		}
	}
	return rules
}

// AllRules returns all registered rules in registration order.
func (r *Registry[T]) AllRules() []Rule[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule[T], len(r.ruleOrder))
	for i, id := range r.ruleOrder {
		rules[i] = r.rules[id]
	}
	return rules
}

// Categories returns all unique categories.
func (r *Registry[T]) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	catSet := make(map[string]struct{})
	for _, rule := range r.rules {
		catSet[rule.Category()] = struct{}{}
	}

	categories := make([]string, 0, len(catSet))
	for cat := range catSet {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	return categories
}

// EnableAll enables all registered rules.
func (r *Registry[T]) EnableAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.rules {
		r.enabled[id] = true
	}
}

// DisableAll disables all registered rules.
func (r *Registry[T]) DisableAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.rules {
		r.enabled[id] = false
	}
}

// EnableCategory enables all rules in a category.
func (r *Registry[T]) EnableCategory(category string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rule := range r.rules {
		if rule.Category() == category {
			r.enabled[id] = true
		}
	}
}

// DisableCategory disables all rules in a category.
func (r *Registry[T]) DisableCategory(category string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rule := range r.rules {
		if rule.Category() == category {
			r.enabled[id] = false
		}
	}
}

// Count returns the number of registered rules.
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// EnabledCount returns the number of enabled rules.
func (r *Registry[T]) EnabledCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, enabled := range r.enabled {
		if enabled {
			count++
		}
	}
	return count
}

// Run executes all enabled rules against a document and returns violations.
// The violations are updated with the registry's severity settings.
func (r *Registry[T]) Run(doc T) []Violation {
	rules := r.EnabledRules()
	var violations []Violation

	for _, rule := range rules {
		for _, v := range rule.Check(doc) {
			// Apply registry severity override
			v.Severity = r.GetSeverity(v.RuleID)
			violations = append(violations, v)
		}
	}

	return violations
}
