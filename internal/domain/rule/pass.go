package rule

import (
	"fmt"
	"sync"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// Facts is the session-scoped store rules use to carry context from the
// prepare phase into the review phase. Keys are namespaced by rule name so
// rules cannot observe each other. Safe for concurrent use.
type Facts struct {
	mu     sync.RWMutex
	values map[factKey]any
}

type factKey struct {
	rule string
	key  string
}

// NewFacts creates an empty store.
func NewFacts() *Facts {
	return &Facts{values: make(map[factKey]any)}
}

func (f *Facts) set(rule, key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[factKey{rule: rule, key: key}] = value
}

func (f *Facts) get(rule, key string) (any, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	value, ok := f.values[factKey{rule: rule, key: key}]

	return value, ok
}

// Len returns the number of stored facts.
func (f *Facts) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.values)
}

// PassConfig carries what the engine knows about the file being walked.
type PassConfig struct {
	Rule       string
	Phase      m.Phase
	Path       m.Path
	Categories []m.Category
	Facts      *Facts
	Report     func(m.Finding)
}

// Pass is handed to every hook. It exposes read-only context about the
// current file and position and the reporting surface.
type Pass struct {
	cfg   PassConfig
	stack []*m.Node
}

// NewPass creates a pass for one rule over one file.
func NewPass(cfg PassConfig) *Pass {
	if cfg.Facts == nil {
		cfg.Facts = NewFacts()
	}

	return &Pass{cfg: cfg}
}

// Rule returns the name of the rule the pass belongs to.
func (p *Pass) Rule() string {
	return p.cfg.Rule
}

// Phase returns the running phase.
func (p *Pass) Phase() m.Phase {
	return p.cfg.Phase
}

// Path returns the source path of the current file.
func (p *Pass) Path() m.Path {
	return p.cfg.Path
}

// Categories returns the categories of the current file.
func (p *Pass) Categories() []m.Category {
	return p.cfg.Categories
}

// Push records node as the innermost ancestor. Only the engine calls it.
func (p *Pass) Push(node *m.Node) {
	p.stack = append(p.stack, node)
}

// Pop removes the innermost ancestor. Only the engine calls it.
func (p *Pass) Pop() {
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// Parent returns the parent of the node being visited, nil at the root.
func (p *Pass) Parent() *m.Node {
	if len(p.stack) == 0 {
		return nil
	}

	return p.stack[len(p.stack)-1]
}

// Ancestors returns the enclosing nodes, outermost first.
func (p *Pass) Ancestors() []*m.Node {
	return append([]*m.Node(nil), p.stack...)
}

// Report emits a finding located at node. When node has no line the nearest
// ancestor line is used.
func (p *Pass) Report(node *m.Node, message string) {
	if p.cfg.Report == nil {
		return
	}

	p.cfg.Report(m.Finding{
		Rule:     p.cfg.Rule,
		Message:  message,
		Path:     p.cfg.Path,
		Line:     p.lineOf(node),
		Severity: m.SeverityAdvisory,
	})
}

// Reportf is Report with a formatted message.
func (p *Pass) Reportf(node *m.Node, format string, args ...any) {
	p.Report(node, fmt.Sprintf(format, args...))
}

func (p *Pass) lineOf(node *m.Node) int {
	if line := node.Line(); line > 0 {
		return line
	}

	for i := len(p.stack) - 1; i >= 0; i-- {
		if line := p.stack[i].Line(); line > 0 {
			return line
		}
	}

	return 0
}

// ExportFact stores a value visible to the same rule in later callbacks,
// in any file and in the review phase.
func (p *Pass) ExportFact(key string, value any) {
	p.cfg.Facts.set(p.cfg.Rule, key, value)
}

// Fact returns a value stored with ExportFact.
func (p *Pass) Fact(key string) (any, bool) {
	return p.cfg.Facts.get(p.cfg.Rule, key)
}
