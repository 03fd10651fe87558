package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"railsbp.dev/pkg/railsbp/internal/adapter"
	adaptermocks "railsbp.dev/pkg/railsbp/internal/adapter/mocks"
	"railsbp.dev/pkg/railsbp/internal/controller"
	controllermocks "railsbp.dev/pkg/railsbp/internal/controller/mocks"
	domain "railsbp.dev/pkg/railsbp/internal/domain"
	"railsbp.dev/pkg/railsbp/internal/domain/checks"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

const postDump = `
kind: class
line: 1
children:
  - :Post
  - kind: call
    line: 7
    children:
      - kind: call
        line: 7
        children:
          - [self]
          - :comments
          - [arglist]
      - :find
      - kind: arglist
        line: 7
        children:
          - [lit, !sym all]
          - [hash, [lit, !sym conditions], [hash, [lit, !sym approved], [true]]]
`

const routesDump = `
kind: block
line: 1
children:
  - kind: call
    line: 3
    children:
      - [lvar, !sym map]
      - :connect
      - [arglist, [str, ":controller/:action/:id"]]
`

const cleanRoutesDump = `
kind: block
line: 1
children:
  - kind: call
    line: 2
    children:
      - [lvar, !sym map]
      - :resources
      - [arglist, [lit, !sym posts]]
`

// same offending finder, but concerns are not classified as models
const concernDump = postDump

func writeDump(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeDump(t, root, "app/models/post.rb.sexp.yml", postDump)
	writeDump(t, root, "app/models/concerns/searchable.rb.sexp.yml", concernDump)
	writeDump(t, root, "config/routes.rb.sexp.yml", routesDump)

	return root
}

func newWorkflow(t *testing.T, ui controller.UI, store adapter.ReportStore) domain.Workflow {
	t.Helper()

	classifier, err := adapter.NewGlobClassifier(nil)
	require.NoError(t, err)

	return domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewYAMLTreeAdapter(),
		classifier,
		store,
		ui,
		checks.All(),
	)
}

func TestWorkflow_Check_ReportsFindings(t *testing.T) {
	root := newProject(t)
	reports := filepath.Join(root, ".railsbp-reports")

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayReport", mock.Anything, mock.MatchedBy(func(report m.Report) bool {
		return len(report.Files) == 3 && len(report.Findings) == 2
	})).Return(nil).Once()
	mockUI.On("Wait", mock.Anything).Return().Once()
	mockUI.On("Close", mock.Anything).Return().Once()

	wf := newWorkflow(t, mockUI, adapter.NewLocalReportStore())

	err := wf.Check(context.Background(), domain.CheckArgs{
		Root:    m.Path(root),
		Paths:   []m.Path{"./..."},
		Reports: m.Path(reports),
		Threads: 4,
	})
	require.ErrorIs(t, err, domain.ErrViolations)

	saved, err := adapter.NewLocalReportStore().LoadReport(m.Path(reports))
	require.NoError(t, err)

	require.Len(t, saved.Findings, 2)
	assert.Equal(t, m.Finding{
		Rule:     "keep-finders-on-their-own-model",
		Message:  "keep finders on their own model",
		Path:     "app/models/post.rb",
		Line:     7,
		Severity: m.SeverityAdvisory,
	}, saved.Findings[0])
	assert.Equal(t, m.Path("config/routes.rb"), saved.Findings[1].Path)
	assert.Equal(t, 3, saved.Findings[1].Line)
	assert.Equal(t, "not use default route", saved.Findings[1].Message)
}

func TestWorkflow_Check_ShowsDiffAgainstPreviousReport(t *testing.T) {
	root := newProject(t)
	reports := filepath.Join(root, ".railsbp-reports")

	quietUI := controllermocks.NewMockUI(t)
	quietUI.On("Start", mock.Anything, mock.Anything).Return(nil)
	quietUI.On("DisplayReport", mock.Anything, mock.Anything).Return(nil)
	quietUI.On("Wait", mock.Anything).Return()
	quietUI.On("Close", mock.Anything).Return()

	first := newWorkflow(t, quietUI, adapter.NewLocalReportStore())
	err := first.Check(context.Background(), domain.CheckArgs{Root: m.Path(root), Reports: m.Path(reports), Threads: 1})
	require.ErrorIs(t, err, domain.ErrViolations)

	writeDump(t, root, "config/routes.rb.sexp.yml", cleanRoutesDump)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayReport", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayReportDiff", mock.Anything, mock.MatchedBy(func(diff string) bool {
		return strings.Contains(diff, "-config/routes.rb:3 - not use default route (not-use-default-route)")
	})).Return().Once()
	mockUI.On("Wait", mock.Anything).Return().Once()
	mockUI.On("Close", mock.Anything).Return().Once()

	second := newWorkflow(t, mockUI, adapter.NewLocalReportStore())
	err = second.Check(context.Background(), domain.CheckArgs{Root: m.Path(root), Reports: m.Path(reports), Threads: 1})
	require.ErrorIs(t, err, domain.ErrViolations)
}

func TestWorkflow_Check_NoFindings(t *testing.T) {
	root := t.TempDir()
	writeDump(t, root, "config/routes.rb.sexp.yml", cleanRoutesDump)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayReport", mock.Anything, mock.MatchedBy(func(report m.Report) bool {
		return len(report.Findings) == 0 && len(report.Files) == 1
	})).Return(nil).Once()
	mockUI.On("Wait", mock.Anything).Return().Once()
	mockUI.On("Close", mock.Anything).Return().Once()

	wf := newWorkflow(t, mockUI, adapter.NewLocalReportStore())

	err := wf.Check(context.Background(), domain.CheckArgs{Root: m.Path(root), Threads: 2})
	require.NoError(t, err)
}

func TestWorkflow_Check_DisabledRule(t *testing.T) {
	root := newProject(t)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayReport", mock.Anything, mock.MatchedBy(func(report m.Report) bool {
		return len(report.Findings) == 1 && report.Findings[0].Rule == "keep-finders-on-their-own-model"
	})).Return(nil).Once()
	mockUI.On("Wait", mock.Anything).Return().Once()
	mockUI.On("Close", mock.Anything).Return().Once()

	wf := newWorkflow(t, mockUI, adapter.NewLocalReportStore())

	err := wf.Check(context.Background(), domain.CheckArgs{
		Root:     m.Path(root),
		Disabled: []string{"not-use-default-route"},
	})
	require.ErrorIs(t, err, domain.ErrViolations)
}

func TestWorkflow_Check_MalformedDumpIsSetupError(t *testing.T) {
	root := newProject(t)
	writeDump(t, root, "app/models/broken.rb.sexp.yml", "kind: [unterminated\n")

	// The UI is never started: no rule runs when setup fails.
	mockUI := controllermocks.NewMockUI(t)

	wf := newWorkflow(t, mockUI, adaptermocks.NewMockReportStore(t))

	err := wf.Check(context.Background(), domain.CheckArgs{Root: m.Path(root), Threads: 2})

	var setupErr *m.SetupError
	require.ErrorAs(t, err, &setupErr)
	assert.Contains(t, string(setupErr.Path), "broken.rb.sexp.yml")
	assert.False(t, errors.Is(err, domain.ErrViolations))
}

func TestWorkflow_Check_SourceDiscoveryFailure(t *testing.T) {
	mockFS := adaptermocks.NewMockSourceFSAdapter(t)
	mockFS.On("Get", mock.Anything, m.Path("."), []m.Path(nil)).Return(nil, adapter.ErrNoSources).Once()

	wf := domain.NewWorkflow(
		mockFS,
		adapter.NewYAMLTreeAdapter(),
		staticCategories{},
		adaptermocks.NewMockReportStore(t),
		controllermocks.NewMockUI(t),
		checks.All(),
	)

	err := wf.Check(context.Background(), domain.CheckArgs{Root: "."})

	var setupErr *m.SetupError
	require.ErrorAs(t, err, &setupErr)
	require.ErrorIs(t, err, adapter.ErrNoSources)
}

type staticCategories map[m.Path][]m.Category

func (s staticCategories) Categories(path m.Path) []m.Category {
	return s[path]
}

func TestWorkflow_List(t *testing.T) {
	root := newProject(t)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayFiles", mock.Anything, []controller.FileSummary{
		{Path: "app/models/concerns/searchable.rb"},
		{Path: "app/models/post.rb", Categories: []m.Category{m.CategoryModel}, Rules: []string{"keep-finders-on-their-own-model"}},
		{Path: "config/routes.rb", Categories: []m.Category{m.CategoryRoute}, Rules: []string{"not-use-default-route"}},
	}).Return(nil).Once()
	mockUI.On("Wait", mock.Anything).Return().Once()
	mockUI.On("Close", mock.Anything).Return().Once()

	wf := newWorkflow(t, mockUI, adaptermocks.NewMockReportStore(t))

	err := wf.List(context.Background(), domain.ListArgs{Root: m.Path(root), Paths: []m.Path{"./..."}})
	require.NoError(t, err)
}

func TestWorkflow_List_Exclude(t *testing.T) {
	root := newProject(t)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayFiles", mock.Anything, mock.MatchedBy(func(files []controller.FileSummary) bool {
		return len(files) == 1 && files[0].Path == "config/routes.rb"
	})).Return(nil).Once()
	mockUI.On("Wait", mock.Anything).Return().Once()
	mockUI.On("Close", mock.Anything).Return().Once()

	wf := newWorkflow(t, mockUI, adaptermocks.NewMockReportStore(t))

	err := wf.List(context.Background(), domain.ListArgs{Root: m.Path(root), Exclude: []string{"^app/"}})
	require.NoError(t, err)
}

func TestWorkflow_Checks(t *testing.T) {
	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayChecks", mock.Anything, mock.MatchedBy(func(summaries []controller.CheckSummary) bool {
		return len(summaries) == 2 &&
			summaries[0].Name == "keep-finders-on-their-own-model" &&
			!summaries[0].Disabled &&
			summaries[1].Disabled &&
			len(summaries[1].Review) == 1 && summaries[1].Review[0] == m.KindCall &&
			len(summaries[1].Prepare) == 0
	})).Return(nil).Once()
	mockUI.On("Wait", mock.Anything).Return().Once()
	mockUI.On("Close", mock.Anything).Return().Once()

	wf := newWorkflow(t, mockUI, adaptermocks.NewMockReportStore(t))

	err := wf.Checks(context.Background(), domain.ChecksArgs{Disabled: []string{"not-use-default-route"}})
	require.NoError(t, err)
}

func TestWorkflow_View(t *testing.T) {
	report := m.Report{Findings: []m.Finding{{Rule: "r", Path: "config/routes.rb", Line: 3}}}

	mockStore := adaptermocks.NewMockReportStore(t)
	mockStore.On("LoadReport", m.Path(".railsbp-reports")).Return(report, nil).Once()

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("Start", mock.Anything, mock.Anything).Return(nil).Once()
	mockUI.On("DisplayReport", mock.Anything, report).Return(nil).Once()
	mockUI.On("Wait", mock.Anything).Return().Once()
	mockUI.On("Close", mock.Anything).Return().Once()

	wf := newWorkflow(t, mockUI, mockStore)

	err := wf.View(context.Background(), domain.ViewArgs{Reports: ".railsbp-reports"})
	require.NoError(t, err)
}

func TestWorkflow_View_MissingReport(t *testing.T) {
	wf := newWorkflow(t, controllermocks.NewMockUI(t), adapter.NewLocalReportStore())

	err := wf.View(context.Background(), domain.ViewArgs{Reports: m.Path(t.TempDir())})
	require.ErrorIs(t, err, adapter.ErrReportNotFound)
}
