// Package domain contains the traversal engine and the analysis workflow.
package domain

import (
	"fmt"
	"log/slog"

	"railsbp.dev/pkg/railsbp/internal/adapter"
	"railsbp.dev/pkg/railsbp/internal/domain/rule"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

// FileResult holds what one phase produced for one file.
type FileResult struct {
	Findings    []m.Finding
	Diagnostics []m.Diagnostic
}

// Walker visits every node of a file's tree depth-first in source order and
// dispatches it to the rules that declared interest in its kind.
type Walker struct {
	classifier adapter.Classifier
}

// NewWalker creates a Walker that classifies files with classifier.
func NewWalker(classifier adapter.Classifier) *Walker {
	return &Walker{classifier: classifier}
}

// binding ties a rule to its pass over the current file.
type binding struct {
	pass *rule.Pass
}

// dispatch indexes bindings by node kind, preserving rule order.
type dispatch struct {
	bindings []*binding
	enter    map[m.Kind][]hookRef
	leave    map[m.Kind][]hookRef
}

type hookRef struct {
	binding *binding
	hook    rule.Hook
}

// Run walks every file for one phase and returns findings and diagnostics in
// file order.
func (w *Walker) Run(phase m.Phase, files []m.SourceFile, rules []rule.Rule, facts *rule.Facts) ([]m.Finding, []m.Diagnostic) {
	var (
		findings    []m.Finding
		diagnostics []m.Diagnostic
	)

	for _, file := range files {
		result := w.WalkFile(phase, file, rules, facts)
		findings = append(findings, result.Findings...)
		diagnostics = append(diagnostics, result.Diagnostics...)
	}

	return findings, diagnostics
}

// WalkFile runs one phase of the applicable rules over a single file.
func (w *Walker) WalkFile(phase m.Phase, file m.SourceFile, rules []rule.Rule, facts *rule.Facts) FileResult {
	result := FileResult{}

	categories := w.categoriesFor(file.Path)
	d := w.bind(phase, file, categories, rules, facts, &result)

	if len(d.enter) == 0 && len(d.leave) == 0 {
		slog.Debug("No rule applies", "path", file.Path, "phase", phase, "categories", categories)
		return result
	}

	w.walk(d, file, phase, file.Tree, &result)

	slog.Debug("Walked file", "path", file.Path, "phase", phase, "findings", len(result.Findings))

	return result
}

func (w *Walker) categoriesFor(path m.Path) []m.Category {
	if w.classifier == nil {
		return nil
	}

	return w.classifier.Categories(path)
}

func (w *Walker) bind(
	phase m.Phase,
	file m.SourceFile,
	categories []m.Category,
	rules []rule.Rule,
	facts *rule.Facts,
	result *FileResult,
) *dispatch {
	d := &dispatch{
		enter: make(map[m.Kind][]hookRef),
		leave: make(map[m.Kind][]hookRef),
	}

	for _, r := range rules {
		w.bindRule(d, r, phase, file, categories, facts, result)
	}

	return d
}

// bindRule adds the hooks of r to d. A rule whose descriptor panics is left
// out of the file and recorded as a diagnostic.
func (w *Walker) bindRule(
	d *dispatch,
	r rule.Rule,
	phase m.Phase,
	file m.SourceFile,
	categories []m.Category,
	facts *rule.Facts,
	result *FileResult,
) {
	name := fmt.Sprintf("%T", r)

	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		diagnostic := m.Diagnostic{
			Rule:    name,
			Phase:   phase,
			Path:    file.Path,
			Line:    file.Tree.Line(),
			Message: fmt.Sprint(recovered),
		}

		slog.Error("Rule setup failed",
			"rule", diagnostic.Rule,
			"phase", phase,
			"path", file.Path,
			"panic", recovered,
		)

		result.Diagnostics = append(result.Diagnostics, diagnostic)
	}()

	name = r.Name()

	if !rule.AppliesTo(r, categories) {
		return
	}

	hooks := r.Hooks(phase)
	if hooks.Empty() {
		return
	}

	b := &binding{
		pass: rule.NewPass(rule.PassConfig{
			Rule:       name,
			Phase:      phase,
			Path:       file.Path,
			Categories: categories,
			Facts:      facts,
			Report: func(f m.Finding) {
				result.Findings = append(result.Findings, f)
			},
		}),
	}
	d.bindings = append(d.bindings, b)

	for kind, hook := range hooks.Enter {
		d.enter[kind] = append(d.enter[kind], hookRef{binding: b, hook: hook})
	}

	for kind, hook := range hooks.Leave {
		d.leave[kind] = append(d.leave[kind], hookRef{binding: b, hook: hook})
	}
}

func (w *Walker) walk(d *dispatch, file m.SourceFile, phase m.Phase, node *m.Node, result *FileResult) {
	if node == nil {
		return
	}

	kind := node.Kind()

	for _, ref := range d.enter[kind] {
		w.invoke(ref, file, phase, node, result)
	}

	if node.Len() > 0 {
		for _, b := range d.bindings {
			b.pass.Push(node)
		}

		for i := range node.Len() {
			w.walk(d, file, phase, node.Child(i), result)
		}

		for _, b := range d.bindings {
			b.pass.Pop()
		}
	}

	for _, ref := range d.leave[kind] {
		w.invoke(ref, file, phase, node, result)
	}
}

// invoke runs one hook. A panic is recorded as a diagnostic and the walk
// goes on.
func (w *Walker) invoke(ref hookRef, file m.SourceFile, phase m.Phase, node *m.Node, result *FileResult) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		diagnostic := m.Diagnostic{
			Rule:    ref.binding.pass.Rule(),
			Phase:   phase,
			Path:    file.Path,
			Line:    node.Line(),
			Message: fmt.Sprint(recovered),
		}

		slog.Error("Rule callback failed",
			"rule", diagnostic.Rule,
			"phase", phase,
			"path", file.Path,
			"line", diagnostic.Line,
			"panic", recovered,
		)

		result.Diagnostics = append(result.Diagnostics, diagnostic)
	}()

	ref.hook(ref.binding.pass, node)
}
