// Package controller provides output adapters for displaying analysis results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// FileSummary describes how one discovered file will be analysed.
type FileSummary struct {
	Path       m.Path
	Categories []m.Category
	Rules      []string
}

// CheckSummary describes one registered rule.
type CheckSummary struct {
	Name       string
	Doc        string
	Categories []m.Category
	Prepare    []m.Kind
	Review     []m.Kind
	Disabled   bool
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCheck StartMode = iota
	ModeList
	ModeView
)

func (s StartMode) title() string {
	switch s {
	case ModeList:
		return "railsbp - files"
	case ModeView:
		return "railsbp - saved report"
	default:
		return "railsbp - rails best practices"
	}
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithCheckMode sets the UI to analysis mode.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithListMode sets the UI to file listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithViewMode sets the UI to saved report mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeCheck}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying analysis output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayFiles(ctx context.Context, files []FileSummary) error
	DisplayChecks(ctx context.Context, checks []CheckSummary) error
	DisplayReport(ctx context.Context, report m.Report) error
	DisplayReportDiff(ctx context.Context, diff string)
}

// NewUI picks the interactive UI for terminals and the plain one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
