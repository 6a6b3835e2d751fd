// Package tui provides the terminal front end of the results viewer.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpapenbr/race-results-hub/log"
	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/results"
	"github.com/mpapenbr/race-results-hub/pkg/route"
)

type page int

const (
	pageList page = iota
	pageDetail
)

// loadedMsg carries the result of a race load started for generation gen
type loadedMsg struct {
	gen    uint64
	target route.Target
	rec    *model.RaceRecord
	err    error
}

type Option func(*Model)

// WithInitialRace opens the race detail for slug on start
func WithInitialRace(slug string) Option {
	return func(m *Model) {
		m.initial = strings.TrimSpace(slug)
	}
}

func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// Model is the root model of the terminal front end.
// The shown page is always derived from the current history location.
type Model struct {
	ctx     context.Context
	state   *route.State
	nav     *route.Navigator
	history *route.History
	log     *log.Logger
	initial string

	page    page
	list    listPage
	detail  detailPage
	loading bool
	status  string

	keys   keyMap
	help   help.Model
	styles styles
	width  int
	height int
}

func New(ctx context.Context, state *route.State, opts ...Option) Model {
	m := Model{
		ctx:     ctx,
		state:   state,
		nav:     route.NewNavigator(),
		history: route.NewHistory(route.ListLocation),
		log:     log.Default().Named("tui"),
		list:    newListPage(),
		detail:  newDetailPage(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  defaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.list.setRaces(state.Search(ctx, ""))
	if m.initial != "" {
		m.history.Push(route.Location(m.initial))
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.navigate()
}

// navigate derives the page from the current location.
// The list needs no load, a detail load is started through the navigator.
func (m *Model) navigate() tea.Cmd {
	m.status = ""
	target := m.state.Resolve(route.Param(m.history.Current()))
	if target.View == route.ViewList {
		m.nav.Abort()
		m.showList()
		return nil
	}
	tk := m.nav.Begin(m.ctx)
	m.loading = true
	state := m.state
	return func() tea.Msg {
		defer tk.Done()
		rec, err := state.Load(tk.Ctx, target.Filename)
		return loadedMsg{gen: tk.Gen, target: target, rec: rec, err: err}
	}
}

func (m *Model) showList() {
	m.page = pageList
	m.loading = false
	m.detail.reset()
	m.list.search.Focus()
}

// push adds location to the history and shows it
func (m *Model) push(location string) tea.Cmd {
	m.history.Push(location)
	return m.navigate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.detail.setSize(msg.Width, msg.Height-6)
		return m, nil

	case loadedMsg:
		return m.handleLoaded(msg), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQ) {
			m.nav.Abort()
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, m.keys.Prev):
			if _, ok := m.history.Back(); ok {
				return m, m.navigate()
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			if _, ok := m.history.Forward(); ok {
				return m, m.navigate()
			}
			return m, nil
		}
		if m.page == pageDetail || m.loading {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) handleLoaded(msg loadedMsg) Model {
	if !m.nav.Current(msg.gen) {
		m.log.Debug("dropping stale load",
			log.String("filename", msg.target.Filename))
		return m
	}
	m.loading = false
	if msg.err != nil {
		// the location is kept, only the view falls back
		m.showList()
		m.status = "Race " + msg.target.Slug + " could not be loaded"
		return m
	}
	m.page = pageDetail
	m.list.search.Blur()
	m.detail.show(m.styles, msg.target, results.Build(msg.rec))
	return m
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.list.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.list.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Select):
		race, ok := m.list.selected()
		if !ok {
			return m, nil
		}
		return m, m.push(route.Location(race.Slug()))
	case key.Matches(msg, m.keys.Back):
		if m.list.search.Focused() {
			m.list.search.Blur()
		}
		return m, nil
	}
	if !m.list.search.Focused() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.nav.Abort()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Filter):
			return m, m.list.search.Focus()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list.search, cmd = m.list.search.Update(msg)
	m.list.setRaces(m.state.Search(m.ctx, m.list.search.Value()))
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		return m, m.push(route.ListLocation)
	}
	if m.loading {
		return m, nil
	}
	if m.detail.driver.Focused() {
		if key.Matches(msg, m.keys.Select) {
			m.detail.driver.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.detail.driver, cmd = m.detail.driver.Update(msg)
		m.detail.applyFilter(m.styles)
		return m, cmd
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.nav.Abort()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Filter):
		return m, m.detail.driver.Focus()
	case key.Matches(msg, m.keys.Up):
		m.detail.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.detail.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.detail.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDwn):
		m.detail.viewport.HalfViewDown()
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	switch {
	case m.loading:
		sb.WriteString(m.styles.Muted.Render("Loading " + route.Param(m.history.Current()) + "..."))
		sb.WriteString("\n")
	case m.page == pageDetail:
		sb.WriteString(m.detail.view(m.styles))
	default:
		sb.WriteString(m.list.view(m.styles, m.height-8))
	}
	if m.status != "" {
		sb.WriteString("\n" + m.styles.Status.Render(m.status))
	}
	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}
