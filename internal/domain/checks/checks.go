// Package checks holds the catalogue of rules run by the engine.
package checks

import (
	"slices"

	"railsbp.dev/pkg/railsbp/internal/domain/rule"
)

// All returns the catalogue in registration order.
func All() []rule.Rule {
	return []rule.Rule{
		KeepFindersOnTheirOwnModel,
		NotUseDefaultRoute,
	}
}

// Lookup returns the rule with the given name.
func Lookup(name string) (rule.Rule, bool) {
	for _, r := range All() {
		if r.Name() == name {
			return r, true
		}
	}

	return nil, false
}

// Select drops the disabled rules, keeping the order of rules.
func Select(rules []rule.Rule, disabled []string) []rule.Rule {
	selected := make([]rule.Rule, 0, len(rules))

	for _, r := range rules {
		if slices.Contains(disabled, r.Name()) {
			continue
		}

		selected = append(selected, r)
	}

	return selected
}
