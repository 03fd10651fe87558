package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var out bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	return NewSimpleUI(cmd), &out
}

func testReport() m.Report {
	return m.Report{
		Files: []m.FileRecord{
			{Path: "app/models/post.rb"},
			{Path: "config/routes.rb"},
		},
		Findings: []m.Finding{
			{Rule: "keep-finders-on-their-own-model", Message: "keep finders on their own model", Path: "app/models/post.rb", Line: 7},
			{Rule: "not-use-default-route", Message: "not use default route", Path: "config/routes.rb", Line: 3},
		},
		Diagnostics: []m.Diagnostic{
			{Rule: "broken", Phase: m.PhaseReview, Path: "config/routes.rb", Line: 1, Message: "boom"},
		},
	}
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ui, out := newTestSimpleUI()

	require.NoError(t, ui.DisplayReport(context.Background(), testReport()))

	got := out.String()
	assert.Contains(t, got, "app/models/post.rb:7 - keep finders on their own model\n")
	assert.Contains(t, got, "config/routes.rb:3 - not use default route\n")
	assert.Contains(t, got, "config/routes.rb:1 - rule broken failed during review: boom\n")
	assert.Contains(t, got, "Found 2 warning(s) in 2 file(s)")
	assert.Contains(t, got, "TOTAL FILES 2")
}

func TestSimpleUI_DisplayReport_NoFindings(t *testing.T) {
	ui, out := newTestSimpleUI()

	report := m.Report{Files: []m.FileRecord{{Path: "config/routes.rb"}}}
	require.NoError(t, ui.DisplayReport(context.Background(), report))

	assert.Equal(t, "No warnings found in 1 file(s)\n", out.String())
}

func TestSimpleUI_DisplayFiles(t *testing.T) {
	ui, out := newTestSimpleUI()

	err := ui.DisplayFiles(context.Background(), []FileSummary{
		{Path: "app/models/post.rb", Categories: []m.Category{m.CategoryModel}, Rules: []string{"keep-finders-on-their-own-model"}},
		{Path: "lib/tasks/cleanup.rb"},
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "app/models/post.rb")
	assert.Contains(t, got, "keep-finders-on-their-own-model")
	assert.Contains(t, got, "lib/tasks/cleanup.rb")
	assert.Contains(t, got, "TOTAL FILES 2")
}

func TestSimpleUI_DisplayChecks(t *testing.T) {
	ui, out := newTestSimpleUI()

	err := ui.DisplayChecks(context.Background(), []CheckSummary{
		{Name: "not-use-default-route", Doc: "Declare RESTful routes.", Categories: []m.Category{m.CategoryRoute}, Review: []m.Kind{m.KindCall}},
		{Name: "disabled-one", Disabled: true},
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "not-use-default-route")
	assert.Contains(t, got, "route")
	assert.Contains(t, got, "call")
	assert.Contains(t, got, "no")
	assert.Contains(t, got, "\nnot-use-default-route\n  Declare RESTful routes.\n")
	assert.NotContains(t, got, "\ndisabled-one\n")
}

func TestSimpleUI_DisplayReportDiff(t *testing.T) {
	t.Run("no changes", func(t *testing.T) {
		ui, out := newTestSimpleUI()
		ui.DisplayReportDiff(context.Background(), "")
		assert.Equal(t, "No changes since the previous report\n", out.String())
	})

	t.Run("changes", func(t *testing.T) {
		ui, out := newTestSimpleUI()
		ui.DisplayReportDiff(context.Background(), "-config/routes.rb:3 - not use default route\n")
		assert.Equal(t, "Changes since the previous report:\n-config/routes.rb:3 - not use default route\n", out.String())
	})
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, out := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, ui.Start(ctx), context.Canceled)
	require.ErrorIs(t, ui.DisplayReport(ctx, testReport()), context.Canceled)
	require.ErrorIs(t, ui.DisplayFiles(ctx, nil), context.Canceled)
	require.ErrorIs(t, ui.DisplayChecks(ctx, nil), context.Canceled)
	ui.DisplayReportDiff(ctx, "x")
	ui.Wait(ctx)
	ui.Close(ctx)

	assert.Empty(t, out.String())
}
