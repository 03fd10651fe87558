// Package pattern implements structural matching of tree nodes against
// templates. Templates are ordinary model nodes; a few reserved kinds act as
// wildcards so literal-equality checks and wildcard checks share one matcher.
package pattern

import (
	m "railsbp.dev/pkg/railsbp/internal/model"
)

// Reserved template kinds. The "_" prefix keeps them out of parsed trees,
// see model.Kind.IsReserved.
const (
	kindAny      m.Kind = "_any"
	kindAnyAtom  m.Kind = "_atom"
	kindOptional m.Kind = "_optional"
	kindRest     m.Kind = "_rest"
)

// Any matches any candidate, including an absent one.
func Any() *m.Node {
	return m.S(kindAny)
}

// AnySym matches any symbol atom.
func AnySym() *m.Node {
	return m.Atom(kindAnyAtom, string(m.KindSymbol))
}

// AnyStr matches any string atom.
func AnyStr() *m.Node {
	return m.Atom(kindAnyAtom, string(m.KindString))
}

// Optional marks a child position that may be missing in the candidate.
// When present it must match t.
func Optional(t *m.Node) *m.Node {
	return m.S(kindOptional, t)
}

// Rest matches zero or more remaining children.
func Rest() *m.Node {
	return m.S(kindRest)
}

// Match reports whether candidate has the shape described by template.
// It never panics: absent or incompatible nodes simply do not match.
func Match(template, candidate *m.Node) bool {
	if template == candidate {
		return true
	}

	switch template.Kind() {
	case kindAny:
		return true
	case kindAnyAtom:
		return candidate.Kind() == m.Kind(template.Value())
	case kindOptional:
		return candidate == nil || Match(template.Child(0), candidate)
	case kindRest:
		return true
	}

	if isAbsent(template) || isAbsent(candidate) {
		return isAbsent(template) && isAbsent(candidate)
	}

	if template.Kind() != candidate.Kind() || template.Value() != candidate.Value() {
		return false
	}

	return matchChildren(template.Children(), candidate.Children())
}

// matchChildren matches two child sequences, honouring Optional and Rest
// markers at any position.
func matchChildren(templates, candidates []*m.Node) bool {
	if len(templates) == 0 {
		return len(candidates) == 0
	}

	head := templates[0]

	switch head.Kind() {
	case kindRest:
		for skip := 0; skip <= len(candidates); skip++ {
			if matchChildren(templates[1:], candidates[skip:]) {
				return true
			}
		}

		return false
	case kindOptional:
		if len(candidates) > 0 && Match(head.Child(0), candidates[0]) && matchChildren(templates[1:], candidates[1:]) {
			return true
		}

		return matchChildren(templates[1:], candidates)
	}

	if len(candidates) == 0 {
		return false
	}

	return Match(head, candidates[0]) && matchChildren(templates[1:], candidates[1:])
}

func isAbsent(n *m.Node) bool {
	return n == nil || n.Kind() == m.KindVoid
}

// MatchAny reports whether candidate matches at least one of the templates.
func MatchAny(candidate *m.Node, templates ...*m.Node) bool {
	for _, t := range templates {
		if Match(t, candidate) {
			return true
		}
	}

	return false
}
