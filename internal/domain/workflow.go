// Package domain holds the binding retirement core and the workflows built on it.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"nodebug.dev/pkg/nodebug/internal/adapter"
	"nodebug.dev/pkg/nodebug/internal/controller"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// ErrFilesFailed is returned when at least one file could not be processed.
var ErrFilesFailed = errors.New("files failed")

// StripArgs contains the arguments for rewriting files.
type StripArgs struct {
	Paths     []m.Path
	Exclude   []string
	Libraries []string
	// Write rewrites files in place.
	Write bool
	// OutDir receives rewritten copies mirroring the working directory layout.
	OutDir  m.Path
	Reports m.Path
	Threads int
}

// PlanArgs contains the arguments for analyzing files without writing.
type PlanArgs struct {
	Paths     []m.Path
	Exclude   []string
	Libraries []string
	Reports   m.Path
	Threads   int
}

// ViewArgs contains the arguments for showing the latest saved report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow is the set of use cases behind the CLI commands.
type Workflow interface {
	Strip(ctx context.Context, args StripArgs) error
	Plan(ctx context.Context, args PlanArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	adapter.Differ
	controller.UI
	Retirer
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	differ adapter.Differ,
	ui controller.UI,
	retirer Retirer,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		Differ:          differ,
		UI:              ui,
		Retirer:         retirer,
	}
}

func (w *workflow) Strip(ctx context.Context, args StripArgs) error {
	matcher, err := NewMatcher(args.Libraries...)
	if err != nil {
		slog.Error("Invalid library pattern", "libraries", args.Libraries, "error", err)
		return err
	}

	if err := w.Start(ctx, controller.WithStripMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	results, err := w.retireAll(ctx, args.Paths, args.Exclude, args.Threads, matcher)
	if err != nil {
		return err
	}

	for i := range results {
		if err := w.emit(ctx, &results[i], args); err != nil {
			return err
		}
	}

	report := newReport(matcher, results)
	if err := w.saveReport(args.Reports, report); err != nil {
		return err
	}

	if err := w.DisplaySummary(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return failedError(report)
}

func (w *workflow) Plan(ctx context.Context, args PlanArgs) error {
	matcher, err := NewMatcher(args.Libraries...)
	if err != nil {
		slog.Error("Invalid library pattern", "libraries", args.Libraries, "error", err)
		return err
	}

	if err := w.Start(ctx, controller.WithPlanMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	results, err := w.retireAll(ctx, args.Paths, args.Exclude, args.Threads, matcher)
	if err != nil {
		return err
	}

	report := newReport(matcher, results)
	if err := w.saveReport(args.Reports, report); err != nil {
		return err
	}

	if err := w.DisplayPlan(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return failedError(report)
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadLatestReport(args.Reports)
	if err != nil {
		slog.Error("Failed to load report", "reports", args.Reports, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	if err := w.DisplayPlan(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// retireAll processes every source with at most threads workers. Each result
// lands in the slot of its source so the order matches discovery order.
func (w *workflow) retireAll(ctx context.Context, paths []m.Path, exclude []string, threads int, matcher *Matcher) ([]m.FileResult, error) {
	sources, err := w.Get(ctx, paths, exclude...)
	if err != nil {
		slog.Error("Failed to collect sources", "error", err)
		return nil, fmt.Errorf("get sources: %w", err)
	}

	if threads < 1 {
		threads = 1
	}

	results := make([]m.FileResult, len(sources))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, source := range sources {
		i, source := i, source
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			results[i] = w.retireOne(groupCtx, source, matcher)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (w *workflow) retireOne(ctx context.Context, source m.Source, matcher *Matcher) m.FileResult {
	path := source.Origin.ShortPath
	if path == "" {
		path = source.Origin.Path
	}

	src, err := w.ReadFile(source.Origin.Path)
	if err != nil {
		slog.Error("Failed to read source", "path", source.Origin.Path, "error", err)
		return m.FileResult{Path: path, Hash: source.Origin.Hash, Error: err.Error()}
	}

	result, err := w.Retire(ctx, path, src, matcher.Match)
	result.Path = path
	result.Hash = source.Origin.Hash

	if err != nil {
		slog.Error("Failed to retire imports", "path", path, "error", err)
		result.Error = err.Error()
		result.Changed = false
		result.Output = src
	}

	return result
}

// emit writes or displays one strip result. Source files are addressed by the
// absolute path recovered from the working directory.
func (w *workflow) emit(ctx context.Context, result *m.FileResult, args StripArgs) error {
	if result.Failed() || !result.Changed {
		return w.DisplayFileResult(ctx, *result, "")
	}

	switch {
	case args.Write:
		info, err := w.FileInfo(result.Path)
		if err != nil {
			return w.recordFailure(ctx, result, fmt.Errorf("stat: %w", err))
		}

		if err := w.WriteFile(result.Path, result.Output, info.Mode().Perm()); err != nil {
			return w.recordFailure(ctx, result, fmt.Errorf("write: %w", err))
		}
	case args.OutDir != "":
		target := w.JoinPath(string(args.OutDir), string(result.Path))
		if err := w.MkdirAll(m.Path(filepath.Dir(string(target)))); err != nil {
			return w.recordFailure(ctx, result, fmt.Errorf("create output dir: %w", err))
		}

		if err := w.WriteFile(target, result.Output, 0o644); err != nil {
			return w.recordFailure(ctx, result, fmt.Errorf("write: %w", err))
		}
	default:
		diff, err := w.Diff(result.Path, result.Original, result.Output)
		if err != nil {
			return w.recordFailure(ctx, result, fmt.Errorf("diff: %w", err))
		}

		return w.DisplayFileResult(ctx, *result, diff)
	}

	return w.DisplayFileResult(ctx, *result, "")
}

// recordFailure marks result as failed and shows it. Output problems are per
// file and never abort the run.
func (w *workflow) recordFailure(ctx context.Context, result *m.FileResult, err error) error {
	slog.Error("Failed to emit result", "path", result.Path, "error", err)
	result.Error = err.Error()

	return w.DisplayFileResult(ctx, *result, "")
}

func (w *workflow) saveReport(dir m.Path, report m.RunReport) error {
	if dir == "" {
		return nil
	}

	path, err := w.SaveReport(dir, report)
	if err != nil {
		slog.Error("Failed to save report", "dir", dir, "error", err)
		return fmt.Errorf("save report: %w", err)
	}

	slog.Info("saved report", "path", path, "files", len(report.Files))

	return nil
}

func newReport(matcher *Matcher, results []m.FileResult) m.RunReport {
	return m.RunReport{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Libraries: matcher.Patterns(),
		Files:     results,
	}
}

func failedError(report m.RunReport) error {
	if summary := report.Summarize(); summary.Failed > 0 {
		return fmt.Errorf("%d of %d: %w", summary.Failed, summary.Files, ErrFilesFailed)
	}

	return nil
}
