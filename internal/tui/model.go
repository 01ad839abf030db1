// Package tui is a terminal front end for the viewer. It fetches the
// catalog in the background and steps through the selected game with the
// keyboard.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"annochess/internal/catalog"
	"annochess/internal/viewer"
)

// loadedMsg carries the catalog once the fetch resolved. A failed fetch
// yields an empty catalog; the loader logs the error.
type loadedMsg struct {
	games *catalog.Catalog
}

// Model is the bubbletea model of the terminal viewer.
type Model struct {
	ctx      context.Context
	loader   *catalog.Loader
	resolver *viewer.Resolver

	games   *catalog.Catalog
	state   viewer.State
	loading bool

	width  int
	styles styles
}

// New returns a model that loads its games from src.
func New(ctx context.Context, src catalog.Source, r *viewer.Resolver) Model {
	if r == nil {
		r = viewer.NewResolver(nil)
	}
	return Model{
		ctx:      ctx,
		loader:   catalog.NewLoader(src, nil),
		resolver: r,
		games:    catalog.New(nil),
		loading:  true,
		styles:   defaultStyles(),
	}
}

// Init starts the catalog fetch.
func (m Model) Init() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		return loadedMsg{games: loader.Load(ctx)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.games = msg.games
		if !m.state.Selected() {
			m.state = viewer.Initial(m.games)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", " ":
			m.state = m.state.Advance()
		case "left", "h":
			m.state = m.state.Retreat()
		case "home", "g":
			m.state = m.state.Goto(0)
		case "end", "G":
			m.state = m.state.Goto(m.state.MoveCount())
		case "tab", "down", "j":
			m.state = m.cycle(1)
		case "shift+tab", "up", "k":
			m.state = m.cycle(-1)
		}
	}
	return m, nil
}

// cycle selects the game delta places away from the current one, wrapping.
func (m Model) cycle(delta int) viewer.State {
	games := m.games.Games()
	if len(games) == 0 {
		return m.state
	}
	at := -1
	if g, ok := m.state.Game(); ok {
		for i := range games {
			if games[i].ID == g.ID {
				at = i
				break
			}
		}
	}
	next := 0
	if at >= 0 {
		next = ((at+delta)%len(games) + len(games)) % len(games)
	}
	return m.state.Select(games[next])
}

// State returns the current navigation state.
func (m Model) State() viewer.State { return m.state }

// Loading reports whether the catalog fetch is still outstanding.
func (m Model) Loading() bool { return m.loading }
