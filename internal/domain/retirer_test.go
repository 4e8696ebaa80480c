package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"nodebug.dev/pkg/nodebug/internal/adapter"
	adaptermocks "nodebug.dev/pkg/nodebug/internal/adapter/mocks"
	"nodebug.dev/pkg/nodebug/internal/domain"
	domainmocks "nodebug.dev/pkg/nodebug/internal/domain/mocks"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

func matchDebug(module string) bool { return module == "debug" }

func TestRetirer_RewriterError(t *testing.T) {
	src := []byte("import 'debug';\nrun();\n")

	rewriter := adaptermocks.NewMockRewriter(t)
	rewriter.EXPECT().Apply(src, mock.Anything).Return(nil, errors.New("overlapping edits"))

	r := domain.NewRetirer(adapter.NewLocalJSFileAdapter(), rewriter, domain.NewPlanner())

	result, err := r.Retire(context.Background(), "index.js", src, matchDebug)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply rewrite at line 1")
	assert.Equal(t, src, result.Output)
	assert.False(t, result.Changed)
}

func TestRetirer_RewriteProducesInvalidSource(t *testing.T) {
	src := []byte("import 'debug';\n")

	rewriter := adaptermocks.NewMockRewriter(t)
	rewriter.EXPECT().Apply(src, mock.Anything).Return([]byte("const = ;\n"), nil)

	r := domain.NewRetirer(adapter.NewLocalJSFileAdapter(), rewriter, domain.NewPlanner())

	result, err := r.Retire(context.Background(), "index.js", src, matchDebug)
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrParse)
	assert.Contains(t, err.Error(), "produced invalid source")
	assert.Equal(t, src, result.Output)
}

func TestRetirer_UnchangedRewriteIsSkipped(t *testing.T) {
	src := []byte("import 'debug';\nimport 'debug';\n")

	rewriter := adaptermocks.NewMockRewriter(t)
	rewriter.EXPECT().Apply(src, mock.Anything).Return(src, nil).Times(2)

	r := domain.NewRetirer(adapter.NewLocalJSFileAdapter(), rewriter, domain.NewPlanner())

	result, err := r.Retire(context.Background(), "index.js", src, matchDebug)
	require.NoError(t, err)
	assert.Len(t, result.Retirements, 2)
	assert.False(t, result.Changed)
	assert.Equal(t, src, result.Output)
}

func TestRetirer_PlanWithoutDirectivesIsSkipped(t *testing.T) {
	src := []byte("import D from 'debug';\nD.enable('x');\n")

	planner := domainmocks.NewMockPlanner(t)
	planner.EXPECT().Plan(mock.Anything, mock.Anything).Return(m.Retirement{
		Module: "debug",
		Line:   1,
		Plan:   m.RewritePlan{Kind: m.PartialKeep, Reasons: []string{"unresolved binding"}},
	}).Once()

	// A rewriter with no expectations fails the test if it is called.
	rewriter := adaptermocks.NewMockRewriter(t)

	r := domain.NewRetirer(adapter.NewLocalJSFileAdapter(), rewriter, planner)

	result, err := r.Retire(context.Background(), "index.js", src, matchDebug)
	require.NoError(t, err)
	require.Len(t, result.Retirements, 1)
	assert.Equal(t, m.PartialKeep, result.Retirements[0].Plan.Kind)
	assert.False(t, result.Changed)
}

func TestRetirer_ParseError(t *testing.T) {
	src := []byte("import 'debug'\nconst = ;\n")

	result, err := newRetirer().Retire(context.Background(), "broken.js", src, matchDebug)
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrParse)
	assert.Equal(t, src, result.Output)
	assert.Empty(t, result.Retirements)
}

func TestRetirer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRetirer().Retire(ctx, "index.js", []byte("import 'debug';\n"), matchDebug)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetirer_NoSites(t *testing.T) {
	src := []byte("const x = require('ms')('1s');\n")

	result, err := newRetirer().Retire(context.Background(), "index.js", src, matchDebug)
	require.NoError(t, err)
	assert.Empty(t, result.Retirements)
	assert.False(t, result.Changed)
	assert.Equal(t, m.Path("index.js"), result.Path)
}
