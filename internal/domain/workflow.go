package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"railsbp.dev/pkg/railsbp/internal/adapter"
	"railsbp.dev/pkg/railsbp/internal/controller"
	"railsbp.dev/pkg/railsbp/internal/domain/checks"
	"railsbp.dev/pkg/railsbp/internal/domain/rule"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

// ErrViolations is returned by Check when at least one finding was reported.
var ErrViolations = errors.New("best practice violations found")

// CheckArgs contains the arguments for analysing a project.
type CheckArgs struct {
	Root     m.Path
	Paths    []m.Path
	Exclude  []string
	Reports  m.Path
	Threads  int
	Disabled []string
}

// ListArgs contains the arguments for listing analysable files.
type ListArgs struct {
	Root     m.Path
	Paths    []m.Path
	Exclude  []string
	Disabled []string
}

// ChecksArgs contains the arguments for describing registered rules.
type ChecksArgs struct {
	Disabled []string
}

// ViewArgs contains the arguments for showing a saved report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the operations exposed to the CLI.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) error
	List(ctx context.Context, args ListArgs) error
	Checks(ctx context.Context, args ChecksArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.TreeAdapter
	adapter.Classifier
	adapter.ReportStore
	controller.UI
	rules []rule.Rule
}

// NewWorkflow creates a Workflow running rules with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	treeAdapter adapter.TreeAdapter,
	classifier adapter.Classifier,
	reportStore adapter.ReportStore,
	ui controller.UI,
	rules []rule.Rule,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		TreeAdapter:     treeAdapter,
		Classifier:      classifier,
		ReportStore:     reportStore,
		UI:              ui,
		rules:           rules,
	}
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	sources, err := w.Get(ctx, args.Root, args.Paths, args.Exclude...)
	if err != nil {
		return &m.SetupError{Path: args.Root, Err: fmt.Errorf("get sources: %w", err)}
	}

	files, err := w.loadFiles(ctx, sources, args.Threads)
	if err != nil {
		return err
	}

	active := checks.Select(w.rules, args.Disabled)
	session := NewSession(NewWalker(w.Classifier), active, args.Threads)

	result, err := session.Run(ctx, files)
	if err != nil {
		return fmt.Errorf("run analysis: %w", err)
	}

	report := m.Report{
		CreatedAt:   time.Now().UTC(),
		Files:       w.fileRecords(sources),
		Findings:    result.Findings,
		Diagnostics: result.Diagnostics,
	}

	slog.Info("Analysis finished",
		"files", len(files),
		"rules", len(active),
		"findings", len(report.Findings),
		"diagnostics", len(report.Diagnostics),
	)

	if err := w.display(ctx, report, args.Reports); err != nil {
		return err
	}

	if args.Reports != "" {
		if err := w.SaveReport(args.Reports, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	if len(report.Findings) > 0 {
		return fmt.Errorf("%d warning(s): %w", len(report.Findings), ErrViolations)
	}

	return nil
}

func (w *workflow) display(ctx context.Context, report m.Report, reports m.Path) error {
	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	if err := w.DisplayReport(ctx, report); err != nil {
		return fmt.Errorf("display report: %w", err)
	}

	if reports != "" {
		w.displayDiff(ctx, report, reports)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) displayDiff(ctx context.Context, report m.Report, reports m.Path) {
	previous, err := w.LoadReport(reports)
	if err != nil {
		if !errors.Is(err, adapter.ErrReportNotFound) {
			slog.Warn("Failed to load previous report", "reports", reports, "error", err)
		}

		return
	}

	diff, err := w.Diff(previous, report)
	if err != nil {
		slog.Warn("Failed to diff reports", "error", err)
		return
	}

	w.DisplayReportDiff(ctx, diff)
}

// loadFiles decodes every tree dump. Any failure is a setup error and aborts
// the run before a rule is invoked.
func (w *workflow) loadFiles(ctx context.Context, sources []m.Source, threads int) ([]m.SourceFile, error) {
	files := make([]m.SourceFile, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	if threads > 0 {
		group.SetLimit(threads)
	}

	for i, source := range sources {
		group.Go(func() error {
			content, err := w.ReadFile(groupCtx, source.Origin.FullPath)
			if err != nil {
				return &m.SetupError{Path: source.Origin.FullPath, Err: fmt.Errorf("read tree: %w", err)}
			}

			tree, err := w.Decode(groupCtx, content)
			if err != nil {
				return &m.SetupError{Path: source.Origin.FullPath, Err: err}
			}

			files[i] = m.SourceFile{Path: source.Origin.ShortPath, Tree: tree}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("Failed to load sources", "error", err)
		return nil, err
	}

	return files, nil
}

func (w *workflow) fileRecords(sources []m.Source) []m.FileRecord {
	records := make([]m.FileRecord, 0, len(sources))

	for _, source := range sources {
		records = append(records, m.FileRecord{
			Path:       source.Origin.ShortPath,
			Hash:       source.Origin.Hash,
			Categories: w.Categories(source.Origin.ShortPath),
		})
	}

	return records
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	sources, err := w.Get(ctx, args.Root, args.Paths, args.Exclude...)
	if err != nil {
		return &m.SetupError{Path: args.Root, Err: fmt.Errorf("get sources: %w", err)}
	}

	active := checks.Select(w.rules, args.Disabled)
	summaries := make([]controller.FileSummary, 0, len(sources))

	for _, source := range sources {
		categories := w.Categories(source.Origin.ShortPath)

		var names []string

		for _, r := range active {
			if rule.AppliesTo(r, categories) {
				names = append(names, r.Name())
			}
		}

		summaries = append(summaries, controller.FileSummary{
			Path:       source.Origin.ShortPath,
			Categories: categories,
			Rules:      names,
		})
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	if err := w.DisplayFiles(ctx, summaries); err != nil {
		return fmt.Errorf("display files: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) Checks(ctx context.Context, args ChecksArgs) error {
	summaries := make([]controller.CheckSummary, 0, len(w.rules))

	for _, r := range w.rules {
		summaries = append(summaries, controller.CheckSummary{
			Name:       r.Name(),
			Doc:        r.Doc(),
			Categories: r.Files(),
			Prepare:    rule.Interests(r, m.PhasePrepare),
			Review:     rule.Interests(r, m.PhaseReview),
			Disabled:   slices.Contains(args.Disabled, r.Name()),
		})
	}

	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	if err := w.DisplayChecks(ctx, summaries); err != nil {
		return fmt.Errorf("display checks: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(args.Reports)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	if err := w.DisplayReport(ctx, report); err != nil {
		return fmt.Errorf("display report: %w", err)
	}

	w.Wait(ctx)

	return nil
}
