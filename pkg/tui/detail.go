package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mpapenbr/race-results-hub/pkg/results"
	"github.com/mpapenbr/race-results-hub/pkg/route"
)

// detailPage shows a single race
type detailPage struct {
	target   route.Target
	detail   *results.Detail
	driver   textinput.Model
	viewport viewport.Model
}

func newDetailPage() detailPage {
	return detailPage{
		driver:   newInput("Filter drivers..."),
		viewport: viewport.New(80, 20),
	}
}

// show replaces the displayed race. The driver filter starts empty.
func (p *detailPage) show(st styles, target route.Target, d *results.Detail) {
	p.target = target
	p.detail = d
	p.driver.Reset()
	p.driver.Blur()
	p.detail.FilterRows("")
	p.viewport.SetContent(p.body(st))
	p.viewport.GotoTop()
}

// reset drops the displayed race and clears the driver filter
func (p *detailPage) reset() {
	p.target = route.Target{}
	p.detail = nil
	p.driver.Reset()
	p.driver.Blur()
	p.viewport.SetContent("")
}

// applyFilter hides the rows not matching the driver input
func (p *detailPage) applyFilter(st styles) {
	if p.detail == nil {
		return
	}
	p.detail.FilterRows(p.driver.Value())
	p.viewport.SetContent(p.body(st))
}

func (p *detailPage) setSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = max(1, height)
}

func (p detailPage) title() string {
	if p.target.Race != nil {
		return p.target.Race.Title()
	}
	return p.target.Slug
}

func (p detailPage) header(st styles) string {
	return st.Title.Render(p.title()) + "\n" + p.driver.View() + "\n"
}

func (p detailPage) view(st styles) string {
	return p.header(st) + "\n" + p.viewport.View()
}

func (p detailPage) body(st styles) string {
	if p.detail == nil {
		return ""
	}
	var sb strings.Builder
	for _, m := range p.detail.Metadata {
		sb.WriteString(st.Label.Render(m.Key+":") + " " + m.Value + "\n")
	}
	if p.detail.ShowLinks() {
		sb.WriteString("\n")
		for _, l := range p.detail.Links {
			sb.WriteString(st.Selected.Render(l.Label) + " " + st.Link.Render(l.URL) + "\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(resultsTable(st, p.detail))
	return sb.String()
}

// resultsTable renders the visible rows. Podium and DNF rows get their
// own colors, the fastest lap cell carries the marker.
func resultsTable(st styles, d *results.Detail) string {
	visible := make([]results.Row, 0, len(d.Rows))
	for _, r := range d.Rows {
		if !r.Hidden {
			visible = append(visible, r)
		}
	}
	rows := make([][]string, 0, len(visible))
	for _, r := range visible {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = c.Display()
		}
		rows = append(rows, cells)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Border).
		Headers(d.Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			if row < 0 || row >= len(visible) {
				return st.Cell
			}
			r := visible[row]
			switch {
			case r.IsDNF():
				return st.DNF
			case r.Podium() > 0:
				return st.Podium[r.Podium()-1]
			}
			return st.Cell
		})
	return t.Render()
}
