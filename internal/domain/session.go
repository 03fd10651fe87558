package domain

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"railsbp.dev/pkg/railsbp/internal/domain/rule"
	m "railsbp.dev/pkg/railsbp/internal/model"
)

// SessionResult is the outcome of both phases over all files.
type SessionResult struct {
	Findings    []m.Finding
	Diagnostics []m.Diagnostic
	Facts       *rule.Facts
}

// Session runs the prepare phase over every file, then the review phase.
// Files of one phase may be walked in parallel; the review phase never
// starts before the whole prepare phase has completed.
type Session struct {
	walker  *Walker
	rules   []rule.Rule
	threads int
}

// NewSession creates a session running rules with at most threads files
// walked concurrently. Values below 1 mean sequential.
func NewSession(walker *Walker, rules []rule.Rule, threads int) *Session {
	if threads < 1 {
		threads = 1
	}

	return &Session{
		walker:  walker,
		rules:   rules,
		threads: threads,
	}
}

// Run analyses files. Results are merged in file order, so the output does
// not depend on the number of threads.
func (s *Session) Run(ctx context.Context, files []m.SourceFile) (SessionResult, error) {
	result := SessionResult{Facts: rule.NewFacts()}

	for _, phase := range m.Phases() {
		slog.Debug("Starting phase", "phase", phase, "files", len(files), "rules", len(s.rules), "threads", s.threads)

		perFile, err := s.runPhase(ctx, phase, files, result.Facts)
		if err != nil {
			return result, err
		}

		for _, fileResult := range perFile {
			result.Findings = append(result.Findings, fileResult.Findings...)
			result.Diagnostics = append(result.Diagnostics, fileResult.Diagnostics...)
		}

		slog.Debug("Finished phase", "phase", phase, "findings", len(result.Findings), "diagnostics", len(result.Diagnostics))
	}

	return result, nil
}

// runPhase walks all files for one phase. group.Wait is the barrier between
// phases.
func (s *Session) runPhase(ctx context.Context, phase m.Phase, files []m.SourceFile, facts *rule.Facts) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.threads)

	for i, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i] = s.walker.WalkFile(phase, file, s.rules, facts)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
