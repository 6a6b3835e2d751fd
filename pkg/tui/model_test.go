//nolint:funlen // ok for tests
package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/race-results-hub/pkg/route"
	"github.com/mpapenbr/race-results-hub/testsupport/basedata"
)

func newModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	state := route.NewState(route.WithSource(basedata.SampleSource(t)))
	require.NoError(t, state.Init(context.Background()))
	m := New(context.Background(), state, opts...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter   = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc     = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown    = tea.KeyMsg{Type: tea.KeyDown}
	keyAltLeft = tea.KeyMsg{Type: tea.KeyLeft, Alt: true}
	keyAltRght = tea.KeyMsg{Type: tea.KeyRight, Alt: true}
)

// settle runs cmd and feeds resulting load messages back into the model
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case loadedMsg:
		next, cmd := m.Update(msg)
		return settle(t, next.(Model), cmd)
	case tea.BatchMsg:
		for _, c := range msg {
			m = settle(t, m, c)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = settle(t, next.(Model), cmd)
	}
	return m
}

func TestList_search(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, pageList, m.page)
	assert.Len(t, m.list.races, 3)

	m = press(t, m, runes("monza"))
	require.Len(t, m.list.races, 1)
	assert.Equal(t, "2024-03-09_gt_sprint_r2.csv", m.list.races[0].Filename)
	assert.Contains(t, m.View(), "Ferrari 296 GT3")

	m = press(t, m, runes("xyz"))
	assert.Empty(t, m.list.races)
	assert.Contains(t, m.View(), noResults)
}

func TestSelectRace(t *testing.T) {
	m := newModel(t)
	m = press(t, m, keyDown, keyEnter)

	assert.Equal(t, pageDetail, m.page)
	assert.False(t, m.loading)
	assert.Equal(t, route.Location("2024-03-09_gt_sprint_r2"), m.history.Current())
	require.NotNil(t, m.detail.detail)
	assert.True(t, m.detail.detail.Rows[0].IsDNF(), "DNF winner gets no podium")
	assert.Equal(t, 2, m.detail.detail.Rows[1].Podium())
	view := m.View()
	assert.Contains(t, view, "Eve Steady")
	assert.Contains(t, view, "Monza")
}

func TestDetail_driverFilterAndBack(t *testing.T) {
	m := newModel(t, WithInitialRace("2024-03-02_gt_sprint_r1"))
	m = settle(t, m, m.Init())
	require.Equal(t, pageDetail, m.page)

	view := m.View()
	assert.Contains(t, view, "Spa, Francorchamps")
	assert.Contains(t, view, "Replay")
	assert.Contains(t, view, "⭐")

	m = press(t, m, runes("/"), runes("bob"))
	assert.True(t, m.detail.detail.Rows[0].Hidden)
	assert.False(t, m.detail.detail.Rows[1].Hidden)
	view = m.View()
	assert.Contains(t, view, "Bob Sample")
	assert.NotContains(t, view, "Alice Example")

	// back pops to the list and clears the driver filter
	m = press(t, m, keyEsc)
	assert.Equal(t, pageList, m.page)
	assert.Equal(t, route.ListLocation, m.history.Current())
	assert.Empty(t, m.detail.driver.Value())

	// history back re-derives the detail from the location
	m = press(t, m, keyAltLeft)
	assert.Equal(t, pageDetail, m.page)
	assert.Empty(t, m.detail.driver.Value())
	assert.False(t, m.detail.detail.Rows[0].Hidden)

	m = press(t, m, keyAltRght)
	assert.Equal(t, pageList, m.page)
}

func TestDetail_noLinks(t *testing.T) {
	m := newModel(t, WithInitialRace("unlisted"))
	m = settle(t, m, m.Init())
	require.Equal(t, pageDetail, m.page)
	assert.False(t, m.detail.detail.ShowLinks())
	assert.NotContains(t, m.View(), "Stream only label")
}

func TestLoadFailure_fallsBackToList(t *testing.T) {
	m := newModel(t, WithInitialRace("2024-04-13_fvee_r7"))
	m = settle(t, m, m.Init())

	assert.Equal(t, pageList, m.page)
	assert.Contains(t, m.status, "could not be loaded")
	assert.Contains(t, m.View(), "could not be loaded")
	assert.Equal(t, "2024-04-13_fvee_r7", route.Param(m.history.Current()),
		"location is kept")
}

func TestStaleLoadDropped(t *testing.T) {
	m := newModel(t)

	next, first := m.Update(keyEnter)
	m = next.(Model)
	require.NotNil(t, first)
	assert.True(t, m.loading)

	// navigate elsewhere before the first load finished
	m = press(t, m, keyEsc)
	assert.Equal(t, pageList, m.page)
	m = press(t, m, keyDown, keyEnter)
	require.Equal(t, pageDetail, m.page)
	assert.Equal(t, "2024-03-09_gt_sprint_r2", m.detail.target.Slug)

	// the late result of the first load must not change anything
	m = settle(t, m, first)
	assert.Equal(t, pageDetail, m.page)
	assert.Equal(t, "2024-03-09_gt_sprint_r2", m.detail.target.Slug)
	assert.Empty(t, m.status)
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// q is typed into the focused search
	next, _ := m.Update(runes("q"))
	assert.Equal(t, "q", next.(Model).list.search.Value())
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                string
		cursor, n, height   int
		wantFirst, wantLast int
	}{
		{"all fit", 2, 5, 10, 0, 5},
		{"no height", 2, 5, 0, 0, 5},
		{"cursor at top", 0, 20, 5, 0, 5},
		{"cursor below", 12, 20, 5, 8, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := window(tt.cursor, tt.n, tt.height)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}
