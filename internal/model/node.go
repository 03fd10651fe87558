// Package model defines the data structures shared by the analysis engine.
package model

import (
	"strconv"
	"strings"
)

// Kind tags the syntactic construct a Node represents.
type Kind string

// Branch kinds, named after the parser's s-expression tags.
const (
	KindCall    Kind = "call"
	KindArglist Kind = "arglist"
	KindHash    Kind = "hash"
	KindArray   Kind = "array"
	KindStr     Kind = "str"
	KindLit     Kind = "lit"
	KindLvar    Kind = "lvar"
	KindIvar    Kind = "ivar"
	KindConst   Kind = "const"
	KindSelf    Kind = "self"
	KindTrue    Kind = "true"
	KindFalse   Kind = "false"
	KindNil     Kind = "nil"
	KindBlock   Kind = "block"
	KindIter    Kind = "iter"
	KindClass   Kind = "class"
	KindModule  Kind = "module"
	KindDefn    Kind = "defn"
	KindDefs    Kind = "defs"
	KindScope   Kind = "scope"
	KindLasgn   Kind = "lasgn"
	KindIasgn   Kind = "iasgn"
	KindIf      Kind = "if"
	KindReturn  Kind = "return"
)

// Atom kinds. Atoms are leaves carrying a value instead of children.
const (
	// KindSymbol is a bare symbol such as the message of a call (:find).
	KindSymbol Kind = "#symbol"
	// KindString is a raw string value, e.g. the payload of a str node.
	KindString Kind = "#string"
	// KindNumber is a numeric literal kept in its textual form.
	KindNumber Kind = "#number"
	// KindVoid marks an absent position, e.g. a call without receiver.
	KindVoid Kind = "#void"
)

// IsAtom reports whether the kind denotes a leaf atom.
func (k Kind) IsAtom() bool {
	return strings.HasPrefix(string(k), "#")
}

// IsReserved reports whether the kind is reserved for pattern templates.
// Parsed trees never carry reserved kinds.
func (k Kind) IsReserved() bool {
	return strings.HasPrefix(string(k), "_")
}

// Node is one element of a parsed source tree. A Node is immutable once
// built and can be shared between traversals. All accessors accept a nil
// receiver and return zero values.
type Node struct {
	kind     Kind
	value    string
	line     int
	children []*Node
}

// S builds a branch node of the given kind.
func S(kind Kind, children ...*Node) *Node {
	return &Node{kind: kind, children: append([]*Node(nil), children...)}
}

// Sym builds a symbol atom.
func Sym(name string) *Node {
	return &Node{kind: KindSymbol, value: name}
}

// Str builds a string atom.
func Str(value string) *Node {
	return &Node{kind: KindString, value: value}
}

// Num builds a numeric atom from its textual form.
func Num(text string) *Node {
	return &Node{kind: KindNumber, value: text}
}

// Void builds the atom standing for an absent position.
func Void() *Node {
	return &Node{kind: KindVoid}
}

// Atom builds an atom of an arbitrary kind. It is used by pattern builders.
func Atom(kind Kind, value string) *Node {
	return &Node{kind: kind, value: value}
}

// At returns a copy of n carrying the given source line.
func (n *Node) At(line int) *Node {
	if n == nil {
		return nil
	}

	cp := *n
	cp.line = line

	return &cp
}

// Kind returns the node kind.
func (n *Node) Kind() Kind {
	if n == nil {
		return ""
	}

	return n.kind
}

// Value returns the atom value; branch nodes have none.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}

	return n.value
}

// Line returns the source line, 0 when unknown.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}

	return n.line
}

// IsAtom reports whether n is a leaf atom.
func (n *Node) IsAtom() bool {
	return n != nil && n.kind.IsAtom()
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}

	return len(n.children)
}

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil
	}

	return n.children[i]
}

// Children returns a copy of the children slice.
func (n *Node) Children() []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}

	return append([]*Node(nil), n.children...)
}

// IsCall reports whether n is a call node.
func (n *Node) IsCall() bool {
	return n.Kind() == KindCall
}

// Receiver returns the receiver of a call node: s(:call, receiver, :message, s(:arglist ...)).
// It returns nil for non-call nodes.
func (n *Node) Receiver() *Node {
	if !n.IsCall() {
		return nil
	}

	return n.Child(0)
}

// Message returns the method name of a call node.
func (n *Node) Message() string {
	if !n.IsCall() {
		return ""
	}

	msg := n.Child(1)
	if msg.Kind() != KindSymbol {
		return ""
	}

	return msg.Value()
}

// Arguments returns the arglist of a call node.
func (n *Node) Arguments() *Node {
	if !n.IsCall() {
		return nil
	}

	args := n.Child(2)
	if args.Kind() != KindArglist {
		return nil
	}

	return args
}

// Equal reports full structural equality of two trees. Line metadata is
// ignored. A nil node equals a void atom.
func Equal(a, b *Node) bool {
	if isAbsent(a) || isAbsent(b) {
		return isAbsent(a) && isAbsent(b)
	}

	if a.kind != b.kind || a.value != b.value || len(a.children) != len(b.children) {
		return false
	}

	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}

	return true
}

func isAbsent(n *Node) bool {
	return n == nil || n.kind == KindVoid
}

// Walk visits root and its descendants depth-first in source order. The
// traversal of a subtree stops when fn returns false.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}

	if !fn(root) {
		return
	}

	for _, child := range root.children {
		Walk(child, fn)
	}
}

// String renders n as an s-expression, e.g. s(:call, nil, :match, s(:arglist)).
func (n *Node) String() string {
	var b strings.Builder

	n.write(&b)

	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch {
	case isAbsent(n):
		b.WriteString("nil")
	case n.kind == KindSymbol:
		b.WriteString(":" + n.value)
	case n.kind == KindString:
		b.WriteString(strconv.Quote(n.value))
	case n.kind.IsAtom():
		b.WriteString(n.value)
	default:
		b.WriteString("s(:" + string(n.kind))

		for _, child := range n.children {
			b.WriteString(", ")
			child.write(b)
		}

		b.WriteString(")")
	}
}
