package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/notedeck/internal/render"
	"github.com/mithrel/notedeck/pkg/api"
)

// Querier is the part of the notes service the browser needs.
type Querier interface {
	Load(ctx context.Context) ([]api.NormalizedNote, api.Metadata, error)
	Items(notes []api.NormalizedNote, st api.QueryState) []api.ListItem
	Detail(n api.NormalizedNote) api.Detail
	LastSync(meta api.Metadata) string
}

type Options struct {
	Headers bool
	Render  render.TermOptions
}

// RenderTable opens an interactive Bubble Tea table over an already loaded
// snapshot. Search, sort field and order changes re-run the query locally.
func RenderTable(ctx context.Context, q Querier, notes []api.NormalizedNote, meta api.Metadata, st api.QueryState, opts Options) error {
	m := newModel(ctx, q, notes, meta, st, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type model struct {
	ctx      context.Context
	q        Querier
	opts     Options
	table    table.Model
	notes    []api.NormalizedNote
	meta     api.Metadata
	st       api.QueryState
	items    []api.ListItem
	search   *searchModal
	note     *noteModal
	width    int
	height   int
	status   string
	lastDur  time.Duration
	lastSync string
}

func newModel(ctx context.Context, q Querier, notes []api.NormalizedNote, meta api.Metadata, st api.QueryState, opts Options) model {
	m := model{ctx: ctx, q: q, opts: opts, notes: notes, meta: meta, st: st}
	m.lastSync = q.LastSync(meta)
	m.initTable()
	return m
}

func (m *model) initTable() {
	cols := m.columnsFor(m.opts.Headers, 30, 60, 20)
	m.table = table.New(table.WithColumns(cols), table.WithFocused(true))
	m.refresh()
	m.applyStyles()
}

// refresh re-runs the query with the current state and rebuilds the rows.
func (m *model) refresh() {
	m.items = m.q.Items(m.notes, m.st)
	rows := make([]table.Row, 0, len(m.items))
	for _, it := range m.items {
		rows = append(rows, table.Row{
			oneLine(it.Note.Title),
			oneLine(it.Preview),
			it.Updated,
		})
	}
	m.table.SetRows(rows)
	cur := m.table.Cursor()
	if cur >= len(m.items) {
		cur = len(m.items) - 1
	}
	m.table.SetCursor(max(0, cur))
}

// selected returns the note under the cursor.
func (m model) selected() (api.NormalizedNote, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return api.NormalizedNote{}, false
	}
	return m.items[idx].Note, true
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		if m.search != nil {
			m.search.resizeForTerm(msg.Width)
		}
		if m.note != nil {
			m.note.resizeForTerm(msg.Width, msg.Height)
		}
		return m, nil
	case reloadResultMsg:
		m.lastDur = msg.dur
		if msg.err != nil {
			m.status = fmt.Sprintf("Reload failed: %v", msg.err)
			return m, nil
		}
		m.notes, m.meta = msg.notes, msg.meta
		m.lastSync = m.q.LastSync(msg.meta)
		m.refresh()
		m.status = "Reloaded"
		return m, nil
	case noteRenderedMsg:
		if m.note == nil || m.note.key != msg.key {
			return m, nil
		}
		if msg.err != nil {
			m.note.setContent(fmt.Sprintf("Render failed: %v", msg.err))
			return m, nil
		}
		m.note.setContent(msg.content)
		return m, nil
	case tea.KeyMsg:
		if m.note != nil {
			return m.updateNote(msg)
		}
		if m.search != nil {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "ctrl+q":
			return m, tea.Quit
		case "esc":
			if m.st.Search != "" {
				m.st.Search = ""
				m.refresh()
				return m, nil
			}
			return m, tea.Quit
		case "/":
			m.search = newSearchModal(m.st.Search, m.width)
			return m, nil
		case "s":
			m.st.Field = nextField(m.st.Field)
			m.refresh()
			return m, nil
		case "o":
			m.st.Order = toggleOrder(m.st.Order)
			m.refresh()
			return m, nil
		case "r":
			m.status = "Reloading…"
			return m, reloadCmd(m.ctx, m.q)
		case "enter":
			n, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.note = newNoteModal(n.Key, m.width, m.height)
			opts := m.opts.Render
			opts.Width = m.note.innerWidth()
			return m, renderNoteCmd(m.q, n, opts)
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.note = nil
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.update(msg)
	return m, cmd
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search = nil
		return m, nil
	case "esc":
		m.st.Search = m.search.previous
		m.search = nil
		m.refresh()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.update(msg)
	if v := m.search.value(); v != m.st.Search {
		m.st.Search = v
		m.refresh()
	}
	return m, cmd
}

func (m model) renderFooter() string {
	left := "/=search • s=sort • o=order • enter=show • r=reload • q=exit"

	var right string
	if m.status != "" {
		if m.lastDur > 0 {
			right = fmt.Sprintf("%s (%s) • ", m.status, m.lastDur.Round(time.Millisecond))
		} else {
			right = m.status + " • "
		}
	}
	right += fmt.Sprintf("%s %s • %d/%d notes ", m.st.Field, m.st.Order, len(m.items), m.meta.Total(len(m.notes)))

	width := max(m.table.Width(), m.width)
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		space = 1
	}
	return left + strings.Repeat(" ", space) + right
}

func (m model) renderHeader() string {
	line := fmt.Sprintf("Last synced: %s | Total notes: %d", m.lastSync, m.meta.Total(len(m.notes)))
	if m.st.Search != "" {
		line += fmt.Sprintf(" | search: %q", m.st.Search)
	}
	return lipgloss.NewStyle().Faint(true).Render(line)
}

func (m model) View() string {
	if m.note != nil {
		return m.renderOverlay(m.note.View())
	}
	body := m.table.View()
	if len(m.items) == 0 {
		body = "No notes found"
	}
	view := m.renderHeader() + "\n" + body + "\n" + m.renderFooter() + "\n"
	if m.search != nil {
		view = m.search.View() + "\n" + view
	}
	return view
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	// header, footer, optional search box
	h := max(4, m.height-6)
	m.table.SetHeight(h)
	m.table.SetWidth(m.width)
	avail := m.width - 6
	if avail < 40 {
		return
	}
	updatedW := 20
	titleW := max(12, (avail-updatedW)*2/5)
	previewW := max(12, avail-updatedW-titleW)
	m.table.SetColumns(m.columnsFor(m.opts.Headers, titleW, previewW, updatedW))
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	if m.opts.Headers {
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
	} else {
		s.Header = s.Header.
			BorderBottom(false).
			Bold(false)
	}
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

// columnsFor returns columns with or without titles based on headers flag.
func (m *model) columnsFor(headers bool, titleW, previewW, updatedW int) []table.Column {
	if headers {
		return []table.Column{
			{Title: "Title", Width: titleW},
			{Title: "Preview", Width: previewW},
			{Title: "Updated", Width: updatedW},
		}
	}
	return []table.Column{
		{Title: "", Width: titleW},
		{Title: "", Width: previewW},
		{Title: "", Width: updatedW},
	}
}
