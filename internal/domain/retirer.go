package domain

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"nodebug.dev/pkg/nodebug/internal/adapter"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// Retirer removes every targeted import site from one file.
type Retirer interface {
	Retire(ctx context.Context, path m.Path, src []byte, match func(module string) bool) (m.FileResult, error)
}

type retirer struct {
	jsAdapter adapter.JSFileAdapter
	rewriter  adapter.Rewriter
	planner   Planner
}

// NewRetirer constructs a Retirer from its parser, emitter and planner.
func NewRetirer(jsAdapter adapter.JSFileAdapter, rewriter adapter.Rewriter, planner Planner) Retirer {
	return &retirer{
		jsAdapter: jsAdapter,
		rewriter:  rewriter,
		planner:   planner,
	}
}

// Retire retires the sites whose module satisfies match, one site per pass,
// re-parsing in between so every plan sees fresh references. Sites that
// produce no edit are skipped on later passes. On error the result carries the original source unchanged.
func (r *retirer) Retire(ctx context.Context, path m.Path, src []byte, match func(module string) bool) (m.FileResult, error) {
	result := m.FileResult{Path: path, Original: src, Output: src}

	prog, err := r.jsAdapter.Parse(ctx, path, src)
	if err != nil {
		return result, err
	}

	limit := len(prog.Sites(match))
	current := src
	skipped := 0

	var retirements []m.Retirement

	for pass := 0; pass < limit; pass++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sites := prog.Sites(match)
		if len(sites) <= skipped {
			break
		}

		ret := r.planner.Plan(prog, sites[skipped])
		retirements = append(retirements, ret)

		if len(ret.Directives) == 0 {
			skipped++
			continue
		}

		next, err := r.rewriter.Apply(current, ret.Directives)
		if err != nil {
			slog.Error("Failed to apply rewrite", "path", path, "line", ret.Line, "error", err)
			return result, fmt.Errorf("apply rewrite at line %d: %w", ret.Line, err)
		}

		if bytes.Equal(next, current) {
			skipped++
			continue
		}

		prog, err = r.jsAdapter.Parse(ctx, path, next)
		if err != nil {
			slog.Error("Rewritten source does not parse", "path", path, "line", ret.Line, "error", err)
			return result, fmt.Errorf("rewrite at line %d produced invalid source: %w", ret.Line, err)
		}

		current = next
	}

	result.Retirements = retirements
	result.Output = current
	result.Changed = !bytes.Equal(current, src)

	slog.Debug("retired file", "path", path, "retirements", len(retirements), "changed", result.Changed)

	return result, nil
}
