package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

type tickMsg time.Time

// planItem is one retirement, or one failed file, in the plan list.
type planItem struct {
	path    string
	line    int
	module  string
	binding string
	kind    string
	reasons []string
	failed  bool
}

func (i planItem) FilterValue() string {
	return i.path + " " + i.module
}

func (i planItem) location() string {
	if i.line == 0 {
		return i.path
	}

	return fmt.Sprintf("%s:%d", i.path, i.line)
}

type planDelegate struct {
	offset int
}

func (d planDelegate) Height() int  { return 1 }
func (d planDelegate) Spacing() int { return 0 }
func (d planDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d planDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	entry, ok := item.(planItem)
	if !ok {
		return
	}

	width := lm.Width() - 16

	kindStyle := lipgloss.NewStyle().Width(14).Bold(true)

	switch {
	case entry.failed:
		kindStyle = kindStyle.Foreground(lipgloss.Color("9"))
	case entry.kind == string(m.PartialKeep):
		kindStyle = kindStyle.Foreground(lipgloss.Color("11"))
	default:
		kindStyle = kindStyle.Foreground(lipgloss.Color("2"))
	}

	text := entry.location() + "  " + entry.module

	var locStyle lipgloss.Style

	if index == lm.Index() {
		locStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		text = animateScroll(text, width, d.offset)
	} else {
		locStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		text = truncateToWidth(text, width)
	}

	_, _ = fmt.Fprintf(w, "%s  %s", kindStyle.Render(entry.kind), locStyle.Render(text))
}

func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const (
		gap   = "   "
		pause = 5
	)

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + gap)
	n := len(runes)
	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// planModel lists the retirements of a report with the reasons of the
// selected one underneath.
type planModel struct {
	width        int
	height       int
	mode         StartMode
	items        []planItem
	planList     list.Model
	delegate     planDelegate
	summary      m.Summary
	createdAt    time.Time
	animOffset   int
	lastSelected int
}

func newPlanModel(report m.RunReport, mode StartMode) planModel {
	var items []planItem

	for _, file := range report.Files {
		if file.Failed() {
			items = append(items, planItem{path: string(file.Path), kind: "ERROR", reasons: []string{file.Error}, failed: true})
			continue
		}

		for _, ret := range file.Retirements {
			items = append(items, planItem{
				path:    string(file.Path),
				line:    ret.Line,
				module:  ret.Module,
				binding: ret.Binding,
				kind:    string(ret.Plan.Kind),
				reasons: ret.Plan.Reasons,
			})
		}
	}

	listItems := make([]list.Item, 0, len(items))
	for _, it := range items {
		listItems = append(listItems, it)
	}

	delegate := planDelegate{}
	planList := list.New(listItems, delegate, 80, 20)
	planList.SetShowPagination(false)
	planList.SetShowFilter(true)
	planList.SetShowHelp(false)
	planList.SetShowTitle(false)
	planList.SetShowStatusBar(false)
	planList.FilterInput.Placeholder = "Filter by path or module…"

	return planModel{
		mode:         mode,
		items:        items,
		planList:     planList,
		delegate:     delegate,
		summary:      report.Summarize(),
		createdAt:    report.CreatedAt,
		lastSelected: 0,
	}
}

// reserved is the number of lines taken by everything but the list.
const reserved = 12

func (pm planModel) needsPagination() bool {
	if pm.height == 0 || len(pm.items) == 0 {
		return false
	}

	return len(pm.items) > pm.height-reserved
}

func (pm planModel) Init() tea.Cmd {
	return tea.Tick(time.Second/2, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (pm planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.width = msg.Width
		pm.height = msg.Height
		pm.planList.SetWidth(pm.width)

	case tickMsg:
		if pm.planList.FilterState() != list.Filtering {
			pm.animOffset++
			pm.delegate.offset = pm.animOffset
			pm.planList.SetDelegate(pm.delegate)
		}

		return pm, tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyMsg:
		if s := msg.String(); (s == "q" && pm.planList.FilterState() != list.Filtering) || s == "ctrl+c" {
			return pm, tea.Quit
		}

		pm.planList, cmd = pm.planList.Update(msg)

		if pm.planList.Index() != pm.lastSelected {
			pm.lastSelected = pm.planList.Index()
			pm.animOffset = 0
			pm.delegate.offset = 0
			pm.planList.SetDelegate(pm.delegate)
		}
	}

	return pm, cmd
}

func (pm planModel) header() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := "nodebug " + pm.mode.String()
	if pm.mode == ModeView && !pm.createdAt.IsZero() {
		title += " " + pm.createdAt.Format(time.RFC3339)
	}

	summary := summaryStyle.Render(fmt.Sprintf(
		"Files: %s   Retirements: %s   Removed: %s   Kept: %s   Failed: %s",
		accentStyle.Render(fmt.Sprintf("%d", pm.summary.Files)),
		accentStyle.Render(fmt.Sprintf("%d", pm.summary.Retirements)),
		accentStyle.Render(fmt.Sprintf("%d", pm.summary.Removed)),
		accentStyle.Render(fmt.Sprintf("%d", pm.summary.Kept)),
		accentStyle.Render(fmt.Sprintf("%d", pm.summary.Failed)),
	))

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), summary)
}

// staticView renders every item for output that fits without scrolling.
func (pm planModel) staticView() string {
	var b strings.Builder

	b.WriteString(pm.header())
	b.WriteString("\n")

	if len(pm.items) == 0 {
		b.WriteString("  No import sites found\n")
		return b.String()
	}

	for _, it := range pm.items {
		fmt.Fprintf(&b, "  %-14s %s  %s\n", it.kind, it.location(), it.module)

		for _, r := range it.reasons {
			fmt.Fprintf(&b, "  %14s %s\n", "", faintStyle.Render(r))
		}
	}

	return b.String()
}

func (pm planModel) View() string {
	listHeight := pm.height - reserved
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := pm.width - 6

	pm.planList.SetHeight(listHeight)
	pm.planList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%-14s  %s", "Plan", "Location"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	table := tableContainer.Render(lipgloss.JoinVertical(lipgloss.Left, headers, pm.planList.View()))

	details := ""
	if selected, ok := pm.planList.SelectedItem().(planItem); ok && len(selected.reasons) > 0 {
		details = faintStyle.Padding(0, 2).Render(strings.Join(selected.reasons, "; "))
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(pm.width).
		Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, pm.header(), table, details, footer)
}
