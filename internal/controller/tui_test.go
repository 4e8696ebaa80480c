package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

func TestTUI_DisplayPlan_Static(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.Start(context.Background(), WithPlanMode()))

	err := tui.DisplayPlan(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("DisplayPlan() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"nodebug plan",
		"FULL_REMOVAL", "src/server.js:1",
		"PARTIAL_KEEP", "src/client.js:3", "unknown member D.log",
		"ERROR", "src/broken.js",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("DisplayPlan() output missing %q, got: %s", want, output)
		}
	}
}

func TestTUI_DisplayPlan_Empty(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.Start(context.Background(), WithPlanMode()))
	require.NoError(t, tui.DisplayPlan(context.Background(), m.RunReport{}))

	if !strings.Contains(buf.String(), "No import sites found") {
		t.Errorf("Expected empty message, got: %s", buf.String())
	}
}

func TestTUI_DisplayPlan_ViewModeShowsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	created := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	report := sampleReport()
	report.CreatedAt = created

	require.NoError(t, tui.Start(context.Background(), WithViewMode()))
	require.NoError(t, tui.DisplayPlan(context.Background(), report))

	assert.Contains(t, buf.String(), "nodebug view")
	assert.Contains(t, buf.String(), created.Format(time.RFC3339))
}

func TestTUI_DisplayFileResult(t *testing.T) {
	tests := []struct {
		name         string
		result       m.FileResult
		diff         string
		wantContains []string
	}{
		{
			name:         "changed",
			result:       m.FileResult{Path: "index.js", Changed: true, Retirements: make([]m.Retirement, 1)},
			diff:         "--- a/index.js\n+++ b/index.js\n@@ -1,2 +1 @@\n-import 'debug';\n run();\n",
			wantContains: []string{"index.js", "1 retirement(s)", "-import 'debug';", "@@ -1,2 +1 @@", " run();"},
		},
		{
			name:         "unchanged",
			result:       m.FileResult{Path: "clean.js"},
			wantContains: []string{"clean.js", "unchanged"},
		},
		{
			name:         "failed",
			result:       m.FileResult{Path: "broken.js", Error: "broken.js:1: parse error"},
			wantContains: []string{"broken.js", "parse error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tui := NewTUI(&buf)

			require.NoError(t, tui.DisplayFileResult(context.Background(), tt.result, tt.diff))

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestTUI_DisplaySummary(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.DisplaySummary(context.Background(), sampleReport()))

	output := buf.String()
	for _, want := range []string{"Files:", "Changed:", "Failed:", "Removed:", "Kept:"} {
		assert.Contains(t, output, want)
	}
}

func TestColorDiff_KeepsLines(t *testing.T) {
	diff := "--- a/x.js\n+++ b/x.js\n@@ -1 +1 @@\n-a\n+b\n"

	got := colorDiff(diff)

	assert.Equal(t, strings.Count(diff, "\n"), strings.Count(got, "\n"))
	assert.Empty(t, colorDiff(""))
}
