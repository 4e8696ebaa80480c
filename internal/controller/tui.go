package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	deletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	mode   StartMode
	width  int
	height int
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start records the mode and the terminal size.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mode = newStartConfig(options...).Mode()

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			p.width = width
			p.height = height
		}
	}

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(_ context.Context) {}

// Wait is a no-op: DisplayPlan runs its program to completion.
func (p *TUI) Wait(_ context.Context) {}

// DisplayFileResult prints one processed file with a colored diff.
func (p *TUI) DisplayFileResult(ctx context.Context, result m.FileResult, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	switch {
	case result.Failed():
		fmt.Fprintf(&b, "%s %s\n", pathStyle.Render(string(result.Path)), errorStyle.Render(result.Error))
	case result.Changed:
		fmt.Fprintf(&b, "%s %s\n", pathStyle.Render(string(result.Path)),
			faintStyle.Render(fmt.Sprintf("%d retirement(s)", len(result.Retirements))))
	default:
		fmt.Fprintf(&b, "%s %s\n", pathStyle.Render(string(result.Path)), faintStyle.Render("unchanged"))
	}

	b.WriteString(colorDiff(diff))

	_, err := fmt.Fprint(p.output, b.String())

	return err
}

// DisplayPlan shows the report as a scrollable list when it does not fit.
func (p *TUI) DisplayPlan(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newPlanModel(report, p.mode)
	model.width = p.width
	model.height = p.height

	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.staticView())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplaySummary prints the run totals.
func (p *TUI) DisplaySummary(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprint(p.output, renderSummary(report.Summarize()))

	return err
}

func renderSummary(s m.Summary) string {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	failed := accent.Render(fmt.Sprintf("%d", s.Failed))
	if s.Failed > 0 {
		failed = errorStyle.Render(fmt.Sprintf("%d", s.Failed))
	}

	return lipgloss.NewStyle().Padding(1, 0, 1, 2).Render(fmt.Sprintf(
		"Files: %s   Changed: %s   Failed: %s   Removed: %s   Kept: %s",
		accent.Render(fmt.Sprintf("%d", s.Files)),
		accent.Render(fmt.Sprintf("%d", s.Changed)),
		failed,
		accent.Render(fmt.Sprintf("%d", s.Removed)),
		accent.Render(fmt.Sprintf("%d", s.Kept)),
	)) + "\n"
}

func colorDiff(diff string) string {
	if diff == "" {
		return ""
	}

	lines := strings.SplitAfter(diff, "\n")

	var b strings.Builder

	for _, line := range lines {
		text := strings.TrimSuffix(line, "\n")
		nl := strings.TrimPrefix(line, text)

		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			b.WriteString(faintStyle.Render(text))
		case strings.HasPrefix(text, "@@"):
			b.WriteString(hunkStyle.Render(text))
		case strings.HasPrefix(text, "+"):
			b.WriteString(addedStyle.Render(text))
		case strings.HasPrefix(text, "-"):
			b.WriteString(deletedStyle.Render(text))
		default:
			b.WriteString(text)
		}

		b.WriteString(nl)
	}

	return b.String()
}
