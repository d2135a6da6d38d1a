package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// searchModal is the search box. Every keystroke re-runs the query.
type searchModal struct {
	input    textinput.Model
	previous string // restored on cancel
	width    int
	padX     int
	box      lipgloss.Style
}

func newSearchModal(current string, termW int) *searchModal {
	m := &searchModal{previous: current, padX: 1}
	m.input = textinput.New()
	m.input.Prompt = "search: "
	m.input.Placeholder = "title or content"
	m.input.SetValue(current)
	m.input.CursorEnd()
	m.input.Focus()
	m.resizeForTerm(termW)
	return m
}

func (m *searchModal) resizeForTerm(termW int) {
	if termW <= 0 {
		termW = 80
	}
	w := int(float64(termW) * 0.6)
	if termW < 80 {
		w = termW - 4
	}
	w = max(32, w)
	m.width = w
	m.box = lipgloss.NewStyle().
		Width(w).
		Padding(0, m.padX).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))
	innerW := w - 2 - m.padX*2
	m.input.Width = max(12, innerW-lipgloss.Width(m.input.Prompt))
}

func (m *searchModal) value() string { return m.input.Value() }

func (m *searchModal) update(msg tea.Msg) (*searchModal, tea.Cmd) {
	if x, ok := msg.(tea.WindowSizeMsg); ok {
		m.resizeForTerm(x.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *searchModal) View() string {
	help := lipgloss.NewStyle().Faint(true).Render("enter=keep • esc=cancel • ctrl+u=clear")
	return m.box.Render(m.input.View() + "\n" + help)
}
