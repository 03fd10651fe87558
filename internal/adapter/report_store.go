package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// ReportFileName is the name of the report inside the reports directory.
const ReportFileName = "report.yaml"

// ErrReportNotFound is returned by LoadReport when no report was saved yet.
var ErrReportNotFound = errors.New("report not found")

// ReportStore persists analysis reports and compares them.
type ReportStore interface {
	SaveReport(dir m.Path, report m.Report) error
	LoadReport(dir m.Path) (m.Report, error)
	Diff(previous, current m.Report) (string, error)
}

// LocalReportStore keeps the report as YAML on the local disk.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveReport writes report to dir, replacing the previous one.
func (s *LocalReportStore) SaveReport(dir m.Path, report m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	content, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(string(dir), ReportFileName)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// LoadReport reads the report saved in dir.
func (s *LocalReportStore) LoadReport(dir m.Path) (m.Report, error) {
	path := filepath.Join(string(dir), ReportFileName)

	// #nosec G304 - reports directory is chosen by the user
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m.Report{}, fmt.Errorf("%s: %w", path, ErrReportNotFound)
		}

		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(content, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}

// Diff returns a unified diff of the findings of two reports, or an empty
// string when they report the same findings.
func (s *LocalReportStore) Diff(previous, current m.Report) (string, error) {
	before := findingLines(previous)
	after := findingLines(current)

	if before == after {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "previous",
		ToFile:   "current",
		Context:  0,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff reports: %w", err)
	}

	return text, nil
}

func findingLines(report m.Report) string {
	var b strings.Builder

	for _, finding := range report.Findings {
		b.WriteString(finding.String())
		b.WriteString(" (")
		b.WriteString(finding.Rule)
		b.WriteString(")\n")
	}

	return b.String()
}
