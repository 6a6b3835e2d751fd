package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Filter  key.Binding
	Back    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Quit    key.Binding
	ForceQ  key.Binding
	PageUp  key.Binding
	PageDwn key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Prev:    key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "history back")),
		Next:    key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "history forward")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQ:  key.NewBinding(key.WithKeys("ctrl+c")),
		PageUp:  key.NewBinding(key.WithKeys("pgup")),
		PageDwn: key.NewBinding(key.WithKeys("pgdown")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Filter, k.Back, k.Prev, k.Next, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Filter, k.Back, k.Prev, k.Next, k.Quit},
	}
}
