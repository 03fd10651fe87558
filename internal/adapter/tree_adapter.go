package adapter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// ErrEmptyTree is returned when a dump holds no document.
var ErrEmptyTree = errors.New("empty tree")

// TreeAdapter turns the serialized output of an external Ruby parser into a
// node tree.
type TreeAdapter interface {
	Decode(ctx context.Context, content []byte) (*m.Node, error)
}

// YAMLTreeAdapter decodes YAML tree dumps.
//
// A branch is either a mapping with "kind", optional "line" and optional
// "children", or a flow sequence whose first element is the kind:
//
//	kind: call
//	line: 3
//	children:
//	  - ~
//	  - :match
//	  - [arglist, [str, ":controller(/:action(/:id(.:format)))"]]
//
// Scalars become atoms: null is void, numbers are numbers, plain scalars
// starting with ":" are symbols and everything else is a string. Inside flow
// sequences a leading ":" is a YAML indicator, so symbols there are written
// with the "!sym" tag; "!str" forces a string. Anchors may appear but
// aliases are rejected: a parser dump never shares subtrees.
type YAMLTreeAdapter struct{}

// NewYAMLTreeAdapter constructs a YAMLTreeAdapter.
func NewYAMLTreeAdapter() *YAMLTreeAdapter {
	return &YAMLTreeAdapter{}
}

// Decode implements TreeAdapter.
func (a *YAMLTreeAdapter) Decode(ctx context.Context, content []byte) (*m.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse tree: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyTree
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: root must be a branch", root.Line)
	}

	return decodeNode(root)
}

func decodeNode(n *yaml.Node) (*m.Node, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nil, fmt.Errorf("line %d: aliases are not supported", n.Line)
	case yaml.ScalarNode:
		return decodeScalar(n), nil
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.SequenceNode:
		return decodeSequence(n)
	default:
		return nil, fmt.Errorf("line %d: unexpected yaml node", n.Line)
	}
}

func decodeScalar(n *yaml.Node) *m.Node {
	switch n.Tag {
	case "!!null":
		return m.Void()
	case "!!int", "!!float":
		return m.Num(n.Value)
	case "!sym":
		return m.Sym(strings.TrimPrefix(n.Value, ":"))
	case "!str":
		return m.Str(n.Value)
	}

	if n.Style == 0 && len(n.Value) > 1 && strings.HasPrefix(n.Value, ":") {
		return m.Sym(n.Value[1:])
	}

	return m.Str(n.Value)
}

func decodeMapping(n *yaml.Node) (*m.Node, error) {
	var (
		kind     string
		line     int
		children []*m.Node
	)

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]

		switch key.Value {
		case "kind":
			kind = value.Value
		case "line":
			parsed, err := strconv.Atoi(value.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid line %q: %w", value.Line, value.Value, err)
			}

			line = parsed
		case "children":
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: children must be a sequence", value.Line)
			}

			decoded, err := decodeChildren(value.Content)
			if err != nil {
				return nil, err
			}

			children = decoded
		default:
			return nil, fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}

	if err := validateKind(kind, n.Line); err != nil {
		return nil, err
	}

	return m.S(m.Kind(kind), children...).At(line), nil
}

func decodeSequence(n *yaml.Node) (*m.Node, error) {
	if len(n.Content) == 0 || n.Content[0].Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: branch must start with its kind", n.Line)
	}

	kind := n.Content[0].Value
	if err := validateKind(kind, n.Line); err != nil {
		return nil, err
	}

	children, err := decodeChildren(n.Content[1:])
	if err != nil {
		return nil, err
	}

	return m.S(m.Kind(kind), children...), nil
}

func decodeChildren(nodes []*yaml.Node) ([]*m.Node, error) {
	children := make([]*m.Node, 0, len(nodes))

	for _, child := range nodes {
		decoded, err := decodeNode(child)
		if err != nil {
			return nil, err
		}

		children = append(children, decoded)
	}

	return children, nil
}

func validateKind(kind string, line int) error {
	if kind == "" {
		return fmt.Errorf("line %d: branch without kind", line)
	}

	if m.Kind(kind).IsAtom() {
		return fmt.Errorf("line %d: %q is an atom kind", line, kind)
	}

	if m.Kind(kind).IsReserved() {
		return fmt.Errorf("line %d: %q is a reserved kind", line, kind)
	}

	return nil
}
