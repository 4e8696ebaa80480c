package controller

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

func TestAnimateScroll(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		width  int
		offset int
		want   string
	}{
		{name: "fits", text: "short", width: 10, offset: 20, want: "short"},
		{name: "zero width", text: "anything", width: 0, want: ""},
		{name: "paused", text: "abcdefghij", width: 5, offset: 2, want: "abcd…"},
		{name: "scroll start", text: "abcdefghij", width: 5, offset: 5, want: "abcde"},
		{name: "scrolled", text: "abcdefghij", width: 5, offset: 6, want: "bcdef"},
		{name: "wraps with gap", text: "abcdefghij", width: 5, offset: 13, want: "ij   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, animateScroll(tt.text, tt.width, tt.offset))
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{text: "hello", width: 10, want: "hello"},
		{text: "hello world", width: 6, want: "hello…"},
		{text: "hello", width: 1, want: "…"},
		{text: "hello", width: 0, want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateToWidth(tt.text, tt.width), "truncateToWidth(%q, %d)", tt.text, tt.width)
	}
}

func TestPlanModel_Items(t *testing.T) {
	pm := newPlanModel(sampleReport(), ModePlan)

	require.Len(t, pm.items, 3)
	assert.Equal(t, "src/server.js:1", pm.items[0].location())
	assert.Equal(t, string(m.PartialKeep), pm.items[1].kind)
	assert.True(t, pm.items[2].failed)
	assert.Equal(t, "src/broken.js", pm.items[2].location())
	assert.Equal(t, "src/client.js debug", pm.items[1].FilterValue())
}

func TestPlanModel_NeedsPagination(t *testing.T) {
	pm := newPlanModel(sampleReport(), ModePlan)
	assert.False(t, pm.needsPagination(), "unknown height never paginates")

	pm.height = reserved + 2
	assert.True(t, pm.needsPagination())

	pm.height = 40
	assert.False(t, pm.needsPagination())

	empty := newPlanModel(m.RunReport{}, ModePlan)
	empty.height = 1
	assert.False(t, empty.needsPagination())
}

func TestPlanModel_Update(t *testing.T) {
	pm := newPlanModel(sampleReport(), ModePlan)

	model, _ := pm.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	pm = model.(planModel)
	assert.Equal(t, 100, pm.width)
	assert.Equal(t, 30, pm.height)

	model, cmd := pm.Update(tickMsg(time.Now()))
	pm = model.(planModel)
	assert.Equal(t, 1, pm.animOffset)
	assert.NotNil(t, cmd)

	model, _ = pm.Update(tea.KeyMsg{Type: tea.KeyDown})
	pm = model.(planModel)
	assert.Equal(t, 1, pm.lastSelected)
	assert.Equal(t, 0, pm.animOffset)

	_, cmd = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPlanModel_View(t *testing.T) {
	pm := newPlanModel(sampleReport(), ModePlan)

	model, _ := pm.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := model.View()

	for _, want := range []string{"nodebug plan", "Plan", "Location", "q quit", "src/server.js:1"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q, got:\n%s", want, view)
		}
	}
}

func TestPlanModel_StaticViewListsReasons(t *testing.T) {
	pm := newPlanModel(sampleReport(), ModePlan)

	view := pm.staticView()
	assert.Contains(t, view, "D escapes at line 4")
	assert.Contains(t, view, "src/broken.js:2: parse error")
}
