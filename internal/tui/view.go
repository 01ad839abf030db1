package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"annochess/internal/board"
)

const panelWidth = 48

type styles struct {
	board   lipgloss.Style
	panel   lipgloss.Style
	title   lipgloss.Style
	faint   lipgloss.Style
	counter lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			Width(panelWidth).
			PaddingLeft(2),
		title:   lipgloss.NewStyle().Bold(true).Underline(true),
		faint:   lipgloss.NewStyle().Faint(true),
		counter: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	left := m.styles.board.Render(board.Text(m.state.Board()))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.styles.panel.Render(m.panel())) + "\n"
}

func (m Model) panel() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.resolver.Title(m.state)))
	b.WriteString("\n")
	if players := m.resolver.Players(m.state); players != "" {
		b.WriteString(m.styles.faint.Render(players))
		b.WriteString("\n")
	}
	if g, ok := m.state.Game(); ok && g.Event != "" {
		b.WriteString(m.styles.faint.Render(g.Event))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.styles.faint.Render("Loading games..."))
		b.WriteString("\n\n")
	}

	counter := m.resolver.Counter(m.state)
	if last := m.state.LastMove(); last != "" {
		counter += "  (" + last + ")"
	}
	b.WriteString(m.styles.counter.Render(counter))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(panelWidth - 2).Render(m.resolver.Resolve(m.state)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.faint.Render(fmt.Sprintf("%d/%d  ←/→ move  tab game  q quit", m.state.Ply(), m.state.MoveCount())))
	return b.String()
}
