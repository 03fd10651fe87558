package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayFiles prints discovered files with their categories and rules.
func (s *SimpleUI) DisplayFiles(ctx context.Context, files []FileSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderFilesTable(files))

	return nil
}

// DisplayChecks prints the registered rules.
func (s *SimpleUI) DisplayChecks(ctx context.Context, checks []CheckSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderChecksTable(checks))

	return nil
}

// DisplayReport prints one line per finding followed by a per-file summary.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderFindings(report))

	if len(report.Findings) > 0 {
		s.printf("\n%s", renderSummaryTable(report))
	}

	return nil
}

// DisplayReportDiff prints the changes since the previous report.
func (s *SimpleUI) DisplayReportDiff(ctx context.Context, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		s.printf("No changes since the previous report\n")
		return
	}

	s.printf("Changes since the previous report:\n%s", diff)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderFindings(report m.Report) string {
	var b strings.Builder

	for _, finding := range report.Findings {
		b.WriteString(finding.String())
		b.WriteString("\n")
	}

	for _, diagnostic := range report.Diagnostics {
		b.WriteString(diagnostic.String())
		b.WriteString("\n")
	}

	if len(report.Findings) == 0 {
		fmt.Fprintf(&b, "No warnings found in %d file(s)\n", len(report.Files))
	} else {
		fmt.Fprintf(&b, "\nFound %d warning(s) in %d file(s)\n", len(report.Findings), len(report.Files))
	}

	return b.String()
}

func renderSummaryTable(report m.Report) string {
	grouped := report.FindingsByPath()

	paths := make([]m.Path, 0, len(grouped))
	for path := range grouped {
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, path := range paths {
		table.Append([]string{string(path), fmt.Sprintf("%d", len(grouped[path]))})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(paths)),
		fmt.Sprintf("%d", len(report.Findings)),
	})

	table.Render()

	return tableBuffer.String()
}

func renderFilesTable(files []FileSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Categories", "Checks"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, file := range files {
		table.Append([]string{string(file.Path), joinCategories(file.Categories), orDash(strings.Join(file.Rules, ", "))})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Files %d", len(files)), "", ""})
	table.Render()

	return tableBuffer.String()
}

func renderChecksTable(checks []CheckSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Check", "Files", "Prepare", "Review", "Enabled"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, check := range checks {
		enabled := "yes"
		if check.Disabled {
			enabled = "no"
		}

		table.Append([]string{
			check.Name,
			joinCategories(check.Categories),
			joinKinds(check.Prepare),
			joinKinds(check.Review),
			enabled,
		})
	}

	table.Render()

	var b strings.Builder
	b.WriteString(tableBuffer.String())

	for _, check := range checks {
		if check.Doc != "" {
			fmt.Fprintf(&b, "\n%s\n  %s\n", check.Name, check.Doc)
		}
	}

	return b.String()
}

func joinCategories(categories []m.Category) string {
	if len(categories) == 0 {
		return "-"
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, string(category))
	}

	return strings.Join(names, ", ")
}

func joinKinds(kinds []m.Kind) string {
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}

	return orDash(strings.Join(names, ", "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
