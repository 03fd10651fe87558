package rule

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

func noop(*Pass, *m.Node) {}

func TestDefinition_ImplementsRule(t *testing.T) {
	def := &Definition{
		ID:         "sample",
		Summary:    "sample rule",
		Categories: []m.Category{m.CategoryModel},
		Prepare:    HookSet{Enter: map[m.Kind]Hook{m.KindClass: noop}},
		Review:     OnCall(noop),
	}

	var r Rule = def

	assert.Equal(t, "sample", r.Name())
	assert.Equal(t, "sample rule", r.Doc())
	assert.Equal(t, []m.Category{m.CategoryModel}, r.Files())
	assert.Contains(t, r.Hooks(m.PhasePrepare).Enter, m.KindClass)
	assert.Contains(t, r.Hooks(m.PhaseReview).Enter, m.KindCall)
}

func TestInterests(t *testing.T) {
	def := &Definition{
		ID: "sample",
		Review: HookSet{
			Enter: map[m.Kind]Hook{m.KindCall: noop, m.KindClass: noop},
			Leave: map[m.Kind]Hook{m.KindClass: noop, m.KindDefn: noop},
		},
	}

	assert.Equal(t, []m.Kind{m.KindCall, m.KindClass, m.KindDefn}, Interests(def, m.PhaseReview))
	assert.Empty(t, Interests(def, m.PhasePrepare))
	assert.True(t, def.Hooks(m.PhasePrepare).Empty())
}

func TestAppliesTo(t *testing.T) {
	model := &Definition{ID: "model", Categories: []m.Category{m.CategoryModel}}
	universal := &Definition{ID: "universal"}

	assert.True(t, AppliesTo(model, []m.Category{m.CategoryModel}))
	assert.True(t, AppliesTo(model, []m.Category{m.CategoryRoute, m.CategoryModel}))
	assert.False(t, AppliesTo(model, []m.Category{m.CategoryRoute}))
	assert.False(t, AppliesTo(model, nil))
	assert.True(t, AppliesTo(universal, nil))
	assert.True(t, AppliesTo(universal, []m.Category{m.CategoryView}))
}

func TestPass_ReportUsesNodeLine(t *testing.T) {
	var findings []m.Finding

	pass := NewPass(PassConfig{
		Rule:   "sample",
		Path:   "app/models/post.rb",
		Report: func(f m.Finding) { findings = append(findings, f) },
	})

	pass.Report(m.S(m.KindCall).At(7), "keep finders on their own model")

	require.Len(t, findings, 1)
	assert.Equal(t, m.Finding{
		Rule:     "sample",
		Message:  "keep finders on their own model",
		Path:     "app/models/post.rb",
		Line:     7,
		Severity: m.SeverityAdvisory,
	}, findings[0])
}

func TestPass_ReportFallsBackToAncestorLine(t *testing.T) {
	var findings []m.Finding

	pass := NewPass(PassConfig{Rule: "sample", Report: func(f m.Finding) { findings = append(findings, f) }})

	outer := m.S(m.KindClass).At(1)
	inner := m.S(m.KindBlock).At(4)
	pass.Push(outer)
	pass.Push(inner)

	assert.Same(t, inner, pass.Parent())
	assert.Equal(t, []*m.Node{outer, inner}, pass.Ancestors())

	pass.Reportf(m.S(m.KindCall), "line %d", 0)
	pass.Pop()
	pass.Report(m.S(m.KindCall), "outer")
	pass.Pop()
	pass.Pop()
	pass.Report(nil, "unknown")

	require.Len(t, findings, 3)
	assert.Equal(t, 4, findings[0].Line)
	assert.Equal(t, "line 0", findings[0].Message)
	assert.Equal(t, 1, findings[1].Line)
	assert.Equal(t, 0, findings[2].Line)
	assert.Nil(t, pass.Parent())
}

func TestPass_ReportWithoutSink(t *testing.T) {
	pass := NewPass(PassConfig{Rule: "sample"})

	assert.NotPanics(t, func() { pass.Report(m.S(m.KindCall), "ignored") })
}

func TestFacts_NamespacedByRule(t *testing.T) {
	facts := NewFacts()

	a := NewPass(PassConfig{Rule: "a", Facts: facts})
	b := NewPass(PassConfig{Rule: "b", Facts: facts})

	a.ExportFact("models", []string{"Post"})

	value, ok := a.Fact("models")
	require.True(t, ok)
	assert.Equal(t, []string{"Post"}, value)

	_, ok = b.Fact("models")
	assert.False(t, ok)
	assert.Equal(t, 1, facts.Len())
}

func TestFacts_ConcurrentWriters(t *testing.T) {
	facts := NewFacts()

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			pass := NewPass(PassConfig{Rule: "r", Facts: facts})
			pass.ExportFact(string(rune('a'+i)), i)
			_, _ = pass.Fact("a")
		}()
	}

	wg.Wait()

	assert.Equal(t, 16, facts.Len())
}
