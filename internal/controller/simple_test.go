package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func sampleReport() m.RunReport {
	return m.RunReport{
		ID:        "run-1",
		Libraries: []string{"debug"},
		Files: []m.FileResult{
			{
				Path:    "src/server.js",
				Changed: true,
				Retirements: []m.Retirement{
					{Module: "debug", Binding: "debug", Line: 1, Plan: m.RewritePlan{Kind: m.FullRemoval}},
				},
			},
			{
				Path:    "src/client.js",
				Changed: true,
				Retirements: []m.Retirement{
					{
						Module:   "debug",
						Binding:  "D",
						Line:     3,
						Plan:     m.RewritePlan{Kind: m.PartialKeep, Reasons: []string{"D escapes at line 4", "unknown member D.log"}},
						Findings: []m.Finding{{Binding: "D", Line: 4}, {Binding: "D", Line: 5}},
					},
				},
			},
			{Path: "src/broken.js", Error: "src/broken.js:2: parse error"},
		},
	}
}

func TestSimpleUI_Start(t *testing.T) {
	ui, _ := newTestSimpleUI()

	require.NoError(t, ui.Start(context.Background(), WithPlanMode()))
	assert.Equal(t, ModePlan, ui.mode)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ui.Start(ctx), context.Canceled)
}

func TestSimpleUI_DisplayFileResult(t *testing.T) {
	tests := []struct {
		name         string
		result       m.FileResult
		diff         string
		wantContains []string
	}{
		{
			name:         "changed with diff",
			result:       m.FileResult{Path: "index.js", Changed: true, Retirements: make([]m.Retirement, 2)},
			diff:         "--- a/index.js\n+++ b/index.js\n",
			wantContains: []string{"index.js: 2 retirement(s)", "+++ b/index.js"},
		},
		{
			name:         "unchanged",
			result:       m.FileResult{Path: "clean.js"},
			wantContains: []string{"clean.js: unchanged"},
		},
		{
			name:         "failed",
			result:       m.FileResult{Path: "broken.js", Error: "parse error"},
			wantContains: []string{"broken.js: error: parse error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestSimpleUI()

			err := ui.DisplayFileResult(context.Background(), tt.result, tt.diff)
			if err != nil {
				t.Fatalf("DisplayFileResult() error = %v", err)
			}

			got := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("DisplayFileResult() output missing %q, got: %s", want, got)
				}
			}
		})
	}
}

func TestSimpleUI_DisplayPlan(t *testing.T) {
	ui, buf := newTestSimpleUI()

	err := ui.DisplayPlan(context.Background(), sampleReport())
	require.NoError(t, err)

	got := buf.String()
	for _, want := range []string{
		"src/server.js", "FULL_REMOVAL",
		"src/client.js", "PARTIAL_KEEP",
		"src/broken.js", "parse error",
		"src/client.js:3 debug kept: D escapes at line 4; unknown member D.log",
	} {
		assert.Contains(t, got, want)
	}

	assert.NotContains(t, got, "src/server.js:1 debug kept")
	assert.Contains(t, strings.ToUpper(got), "TOTAL FILES 3")
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	ui, buf := newTestSimpleUI()

	err := ui.DisplaySummary(context.Background(), sampleReport())
	require.NoError(t, err)

	got := strings.ToUpper(buf.String())
	for _, want := range []string{"FILES", "CHANGED", "FAILED", "RETIREMENTS", "REMOVED", "KEPT"} {
		assert.Contains(t, got, want)
	}

	s := sampleReport().Summarize()
	assert.Equal(t, m.Summary{Files: 3, Changed: 2, Failed: 1, Retirements: 2, Removed: 1, Kept: 1}, s)
}

func TestSimpleUI_CanceledContext(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, ui.DisplayPlan(ctx, sampleReport()), context.Canceled)
	assert.ErrorIs(t, ui.DisplaySummary(ctx, sampleReport()), context.Canceled)
	assert.ErrorIs(t, ui.DisplayFileResult(ctx, m.FileResult{}, ""), context.Canceled)
	assert.Empty(t, buf.String())
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	_, isTUI := NewUI(cmd, true).(*TUI)
	assert.True(t, isTUI)

	_, isSimple := NewUI(cmd, false).(*SimpleUI)
	assert.True(t, isSimple)

	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestStartMode_String(t *testing.T) {
	assert.Equal(t, "strip", ModeStrip.String())
	assert.Equal(t, "plan", ModePlan.String())
	assert.Equal(t, "view", ModeView.String())
	assert.Equal(t, ModeStrip, newStartConfig().Mode())
	assert.Equal(t, ModeView, newStartConfig(WithPlanMode(), WithViewMode()).Mode())
}
