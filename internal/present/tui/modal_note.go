package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// noteModal is a foreground modal showing the rendered note
// inside a scrollable viewport.
type noteModal struct {
	key     string
	vp      viewport.Model
	width   int
	height  int
	padX    int
	padY    int
	box     lipgloss.Style
	content string
}

func newNoteModal(key string, termW, termH int) *noteModal {
	m := &noteModal{key: key, padX: 2, padY: 1}
	m.resizeForTerm(termW, termH)
	m.setContent("Loading…")
	return m
}

func (m *noteModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	// 60% width, or nearly full width if terminal is small (<80 cols)
	w := int(float64(termW) * 0.6)
	if termW < 80 {
		w = termW - 4
	}
	if w < 40 {
		w = max(32, termW-2)
	}
	h := int(float64(termH) * 0.7)
	if termH < 20 {
		h = termH - 2
	}
	if h < 10 {
		h = max(8, termH-1)
	}
	m.width, m.height = w, h
	m.box = lipgloss.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	innerW := max(10, w-2-m.padX*2)
	innerH := max(5, h-2-m.padY*2)
	if m.vp.Width == 0 {
		m.vp = viewport.New(innerW, innerH)
	} else {
		m.vp.Width = innerW
		m.vp.Height = innerH
	}
	m.vp.SetContent(m.content)
}

// innerWidth is the wrap width for glamour.
func (m *noteModal) innerWidth() int { return m.vp.Width }

func (m *noteModal) setContent(s string) {
	m.content = s
	m.vp.SetContent(s)
}

func (m *noteModal) update(msg tea.Msg) (*noteModal, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.resizeForTerm(x.Width, x.Height)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *noteModal) View() string { return m.box.Render(m.vp.View()) }
