// Package rule defines the contract between the traversal engine and the
// checks it runs.
package rule

import (
	"slices"
	"sort"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// Hook is a callback invoked for one node of a declared kind.
type Hook func(pass *Pass, node *m.Node)

// HookSet holds the callbacks of one phase. Enter hooks run before the
// children of a node are visited, Leave hooks after.
type HookSet struct {
	Enter map[m.Kind]Hook
	Leave map[m.Kind]Hook
}

// Empty reports whether the set declares no callbacks.
func (h HookSet) Empty() bool {
	return len(h.Enter) == 0 && len(h.Leave) == 0
}

// Rule is a self-contained check. Implementations must not keep per-run
// state of their own; cross-file context goes through Pass facts.
type Rule interface {
	// Name is the unique identifier used in reports and configuration.
	Name() string
	// Doc is a one-paragraph description shown by the checks command.
	Doc() string
	// Files lists the categories the rule applies to. Empty means every file.
	Files() []m.Category
	// Hooks returns the callbacks for a phase.
	Hooks(phase m.Phase) HookSet
}

// Interests returns the node kinds a rule wants to observe during a phase,
// sorted for stable output.
func Interests(r Rule, phase m.Phase) []m.Kind {
	hooks := r.Hooks(phase)
	seen := make(map[m.Kind]struct{}, len(hooks.Enter)+len(hooks.Leave))

	for kind := range hooks.Enter {
		seen[kind] = struct{}{}
	}

	for kind := range hooks.Leave {
		seen[kind] = struct{}{}
	}

	kinds := make([]m.Kind, 0, len(seen))
	for kind := range seen {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}

// AppliesTo reports whether a rule runs for a file with the given categories.
func AppliesTo(r Rule, categories []m.Category) bool {
	files := r.Files()
	if len(files) == 0 {
		return true
	}

	for _, category := range categories {
		if slices.Contains(files, category) {
			return true
		}
	}

	return false
}

// Definition is a value-like Rule descriptor. Checks are declared as
// package-level *Definition values.
type Definition struct {
	ID         string
	Summary    string
	Categories []m.Category
	Prepare    HookSet
	Review     HookSet
}

// Name implements Rule.
func (d *Definition) Name() string {
	return d.ID
}

// Doc implements Rule.
func (d *Definition) Doc() string {
	return d.Summary
}

// Files implements Rule.
func (d *Definition) Files() []m.Category {
	return d.Categories
}

// Hooks implements Rule.
func (d *Definition) Hooks(phase m.Phase) HookSet {
	if phase == m.PhasePrepare {
		return d.Prepare
	}

	return d.Review
}

// OnCall builds an Enter hook set for call nodes, the most common case.
func OnCall(hook Hook) HookSet {
	return HookSet{Enter: map[m.Kind]Hook{m.KindCall: hook}}
}
