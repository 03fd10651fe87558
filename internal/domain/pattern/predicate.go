package pattern

import (
	"slices"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// Predicate is a test over a single node.
type Predicate func(*m.Node) bool

// KindIs holds for nodes of any of the given kinds.
func KindIs(kinds ...m.Kind) Predicate {
	return func(n *m.Node) bool {
		return n != nil && slices.Contains(kinds, n.Kind())
	}
}

// Template holds for nodes matching t.
func Template(t *m.Node) Predicate {
	return func(n *m.Node) bool {
		return Match(t, n)
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(n *m.Node) bool {
		return !p(n)
	}
}

// And holds when every predicate holds.
func And(ps ...Predicate) Predicate {
	return func(n *m.Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}

		return true
	}
}

// Or holds when at least one predicate holds.
func Or(ps ...Predicate) Predicate {
	return func(n *m.Node) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}

		return false
	}
}

// Exists reports whether any direct child of node satisfies p.
func Exists(node *m.Node, p Predicate) bool {
	for i := range node.Len() {
		if p(node.Child(i)) {
			return true
		}
	}

	return false
}
