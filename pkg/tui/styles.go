package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#58a6ff")
	colorMuted  = lipgloss.Color("#8b949e")
	colorError  = lipgloss.Color("#f87171")
	colorGold   = lipgloss.Color("#ffd700")
	colorSilver = lipgloss.Color("#c0c0c0")
	colorBronze = lipgloss.Color("#cd7f32")
)

type styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Link     lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Podium   [3]lipgloss.Style
	DNF      lipgloss.Style
	Border   lipgloss.Style
}

func defaultStyles() styles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Status:   lipgloss.NewStyle().Foreground(colorError),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Label:    lipgloss.NewStyle().Foreground(colorMuted).Width(12),
		Link:     lipgloss.NewStyle().Underline(true).Foreground(colorAccent),
		Header:   cell.Bold(true).Foreground(colorMuted),
		Cell:     cell,
		Podium: [3]lipgloss.Style{
			cell.Foreground(colorGold),
			cell.Foreground(colorSilver),
			cell.Foreground(colorBronze),
		},
		DNF:    cell.Foreground(colorMuted).Strikethrough(true),
		Border: lipgloss.NewStyle().Foreground(colorMuted),
	}
}
