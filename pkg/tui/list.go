package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mpapenbr/race-results-hub/pkg/model"
)

const noResults = "No results found"

// listPage shows the (filtered) race list
type listPage struct {
	search textinput.Model
	races  []model.RaceDescriptor
	cursor int
}

func newListPage() listPage {
	ti := newInput("Search races...")
	ti.Focus()
	return listPage{search: ti, races: []model.RaceDescriptor{}}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 80
	ti.Width = 40
	ti.Prompt = "> "
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// setRaces replaces the list content. The cursor is kept in range.
func (p *listPage) setRaces(races []model.RaceDescriptor) {
	p.races = races
	if p.cursor >= len(races) {
		p.cursor = max(0, len(races)-1)
	}
}

func (p *listPage) move(delta int) {
	if len(p.races) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.races)-1)
}

func (p listPage) selected() (model.RaceDescriptor, bool) {
	if p.cursor < 0 || p.cursor >= len(p.races) {
		return model.RaceDescriptor{}, false
	}
	return p.races[p.cursor], true
}

func (p listPage) view(st styles, height int) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render("Race Results Hub"))
	sb.WriteString("\n")
	sb.WriteString(p.search.View())
	sb.WriteString("\n\n")
	if len(p.races) == 0 {
		sb.WriteString(st.Muted.Render(noResults))
		sb.WriteString("\n")
		return sb.String()
	}
	first, last := window(p.cursor, len(p.races), height)
	for i := first; i < last; i++ {
		line := "  " + p.races[i].Title()
		if i == p.cursor {
			line = st.Selected.Render("▸ " + p.races[i].Title())
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// window returns the visible index range of n entries so that cursor is
// visible. A height <= 0 shows everything.
func window(cursor, n, height int) (first, last int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	first = max(0, cursor-height+1)
	return first, first + height
}
