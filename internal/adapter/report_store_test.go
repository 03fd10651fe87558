package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

func sampleReport() m.Report {
	return m.Report{
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Files: []m.FileRecord{
			{Path: "app/models/post.rb", Hash: "abc", Categories: []m.Category{m.CategoryModel}},
			{Path: "config/routes.rb", Hash: "def", Categories: []m.Category{m.CategoryRoute}},
		},
		Findings: []m.Finding{
			{Rule: "keep-finders-on-their-own-model", Message: "keep finders on their own model", Path: "app/models/post.rb", Line: 7, Severity: m.SeverityAdvisory},
			{Rule: "not-use-default-route", Message: "not use default route", Path: "config/routes.rb", Line: 3, Severity: m.SeverityAdvisory},
		},
	}
}

func TestLocalReportStore_SaveAndLoad(t *testing.T) {
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))
	store := NewLocalReportStore()

	report := sampleReport()
	require.NoError(t, store.SaveReport(dir, report))

	_, err := os.Stat(filepath.Join(string(dir), ReportFileName))
	require.NoError(t, err)

	loaded, err := store.LoadReport(dir)
	require.NoError(t, err)
	assert.Equal(t, report, loaded)
}

func TestLocalReportStore_LoadMissing(t *testing.T) {
	_, err := NewLocalReportStore().LoadReport(m.Path(t.TempDir()))
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestLocalReportStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReportFileName), []byte("findings: {"), 0o600))

	_, err := NewLocalReportStore().LoadReport(m.Path(dir))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReportNotFound)
}

func TestLocalReportStore_Diff(t *testing.T) {
	store := NewLocalReportStore()

	t.Run("same findings", func(t *testing.T) {
		previous := sampleReport()
		current := sampleReport()
		current.CreatedAt = previous.CreatedAt.Add(time.Hour)

		diff, err := store.Diff(previous, current)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("fixed finding", func(t *testing.T) {
		previous := sampleReport()
		current := sampleReport()
		current.Findings = current.Findings[:1]

		diff, err := store.Diff(previous, current)
		require.NoError(t, err)
		assert.Contains(t, diff, "--- previous")
		assert.Contains(t, diff, "+++ current")
		assert.Contains(t, diff, "-config/routes.rb:3 - not use default route (not-use-default-route)")
		assert.NotContains(t, diff, "-app/models/post.rb:7")
	})

	t.Run("new finding", func(t *testing.T) {
		current := sampleReport()

		diff, err := store.Diff(m.Report{}, current)
		require.NoError(t, err)
		assert.Contains(t, diff, "+app/models/post.rb:7 - keep finders on their own model (keep-finders-on-their-own-model)")
	})
}
