package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options...).Mode()

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait returns immediately; SimpleUI never blocks.
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayFileResult prints one processed file with its diff, if any.
func (s *SimpleUI) DisplayFileResult(ctx context.Context, result m.FileResult, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch {
	case result.Failed():
		s.printf("%s: error: %s\n", result.Path, result.Error)
	case result.Changed:
		s.printf("%s: %d retirement(s)\n", result.Path, len(result.Retirements))
	default:
		s.printf("%s: unchanged\n", result.Path)
	}

	if diff != "" {
		s.printf("%s", diff)
	}

	return nil
}

// DisplayPlan prints one row per retirement followed by the keep reasons.
func (s *SimpleUI) DisplayPlan(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPlanTable(report))

	for _, file := range report.Files {
		for _, ret := range file.Retirements {
			if ret.Plan.Kind != m.PartialKeep || len(ret.Plan.Reasons) == 0 {
				continue
			}

			s.printf("%s:%d %s kept: %s\n", file.Path, ret.Line, ret.Module, strings.Join(ret.Plan.Reasons, "; "))
		}
	}

	return nil
}

// DisplaySummary prints the run totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSummaryTable(report.Summarize()))

	return nil
}

func renderPlanTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Line", "Module", "Binding", "Plan", "Findings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	retirements := 0

	for _, file := range report.Files {
		if file.Failed() {
			table.Append([]string{string(file.Path), "", "", "", "error", file.Error})
			continue
		}

		for _, ret := range file.Retirements {
			table.Append([]string{
				string(file.Path),
				fmt.Sprintf("%d", ret.Line),
				ret.Module,
				ret.Binding,
				string(ret.Plan.Kind),
				fmt.Sprintf("%d", len(ret.Findings)),
			})

			retirements++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Files)),
		"", "", "",
		fmt.Sprintf("%d", retirements),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Files", "Changed", "Failed", "Retirements", "Removed", "Kept"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.Append([]string{
		fmt.Sprintf("%d", summary.Files),
		fmt.Sprintf("%d", summary.Changed),
		fmt.Sprintf("%d", summary.Failed),
		fmt.Sprintf("%d", summary.Retirements),
		fmt.Sprintf("%d", summary.Removed),
		fmt.Sprintf("%d", summary.Kept),
	})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
