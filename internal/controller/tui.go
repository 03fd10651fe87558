package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	pathStyle    = lipgloss.NewStyle().Bold(true)
	lineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI for interactive terminals. Output is collected between
// Start and Wait; Wait prints it directly when it fits the screen and opens a
// pager otherwise.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	mode    StartMode
	content strings.Builder
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start resets the collected output.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.mode = cfg.mode
	p.content.Reset()

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.content.Reset()
}

// Wait shows the collected output and returns once the user is done.
func (p *TUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.mu.Lock()
	title := p.mode.title()
	content := p.content.String()
	p.mu.Unlock()

	if err := p.show(title, content); err != nil {
		slog.Error("Failed to display output", "error", err)
	}
}

// DisplayFiles renders discovered files.
func (p *TUI) DisplayFiles(ctx context.Context, files []FileSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.write(renderFilesTable(files))

	return nil
}

// DisplayChecks renders the registered rules.
func (p *TUI) DisplayChecks(ctx context.Context, checks []CheckSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.write(renderChecksTable(checks))

	return nil
}

// DisplayReport renders findings grouped by file.
func (p *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.write(renderStyledReport(report))

	return nil
}

// DisplayReportDiff renders the changes since the previous report.
func (p *TUI) DisplayReportDiff(ctx context.Context, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		p.write(helpStyle.Render("No changes since the previous report") + "\n")
		return
	}

	var b strings.Builder

	b.WriteString("\n" + pathStyle.Render("Changes since the previous report") + "\n")

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			b.WriteString(addedStyle.Render(line))
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			b.WriteString(removedStyle.Render(line))
		default:
			b.WriteString(line)
		}

		b.WriteString("\n")
	}

	p.write(b.String())
}

func (p *TUI) write(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.content.WriteString(s)
}

func (p *TUI) show(title, content string) error {
	header := titleStyle.Render(title)

	width, height := p.size()
	if height == 0 || lineCount(header)+lineCount(content) < height {
		_, err := fmt.Fprintf(p.output, "%s\n%s", header, content)
		return err
	}

	model := newPagerModel(header, content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func (p *TUI) size() (int, int) {
	f, ok := p.output.(*os.File)
	if !ok {
		return 0, 0
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}

	return width, height
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

func renderStyledReport(report m.Report) string {
	var b strings.Builder

	grouped := report.FindingsByPath()

	var order []m.Path

	for _, finding := range report.Findings {
		if len(order) == 0 || order[len(order)-1] != finding.Path {
			order = append(order, finding.Path)
		}
	}

	for _, path := range order {
		b.WriteString(pathStyle.Render(string(path)) + "\n")

		for _, finding := range grouped[path] {
			fmt.Fprintf(&b, "  %s %s %s\n",
				lineStyle.Render(fmt.Sprintf("%4d", finding.Line)),
				warningStyle.Render(finding.Message),
				helpStyle.Render(finding.Rule),
			)
		}
	}

	for _, diagnostic := range report.Diagnostics {
		b.WriteString(errorStyle.Render(diagnostic.String()) + "\n")
	}

	if len(report.Findings) == 0 {
		b.WriteString(okStyle.Render(fmt.Sprintf("No warnings found in %d file(s)", len(report.Files))) + "\n")
	} else {
		b.WriteString("\n" + warningStyle.Render(fmt.Sprintf("Found %d warning(s) in %d file(s)", len(report.Findings), len(report.Files))) + "\n")
	}

	return b.String()
}

// pagerModel scrolls output that does not fit the terminal.
type pagerModel struct {
	header   string
	content  string
	viewport viewport.Model
	ready    bool
}

func newPagerModel(header, content string, width, height int) pagerModel {
	pm := pagerModel{header: header, content: content}
	pm.resize(width, height)

	return pm
}

func (pm *pagerModel) resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}

	bodyHeight := height - lineCount(pm.header) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if !pm.ready {
		pm.viewport = viewport.New(width, bodyHeight)
		pm.viewport.SetContent(pm.content)
		pm.ready = true

		return
	}

	pm.viewport.Width = width
	pm.viewport.Height = bodyHeight
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.resize(msg.Width, msg.Height)

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return pm, tea.Quit
		}
	}

	if !pm.ready {
		return pm, nil
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if !pm.ready {
		return pm.header + "\n"
	}

	footer := helpStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll • q quit", pm.viewport.ScrollPercent()*100))

	return pm.header + "\n" + pm.viewport.View() + "\n" + footer
}
