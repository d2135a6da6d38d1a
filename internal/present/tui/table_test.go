package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/notedeck/internal/notes"
	"github.com/mithrel/notedeck/internal/snapshot"
	"github.com/mithrel/notedeck/pkg/api"
)

type staticSource struct{ snap snapshot.Snapshot }

func (s staticSource) Load(context.Context) (snapshot.Snapshot, error) { return s.snap, nil }

func testModel(t *testing.T) model {
	t.Helper()
	snap := snapshot.Snapshot{Notes: []api.RawNote{
		{Key: "a", Title: "Apples", Body: "Apples\nred and green", UpdatedDate: "2024-01-01T00:00:00Z"},
		{Key: "b", Title: "Bread", Body: "# Bread\nsourdough", UpdatedDate: "2024-03-01T00:00:00Z"},
		{Key: "c", Title: "Cherries", Body: "<h1>Cherries</h1><p>dark red</p>", UpdatedDate: "2024-02-01T00:00:00Z"},
	}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := notes.New(staticSource{snap: snap}, nil, log, notes.DefaultOptions())
	loaded, meta, err := svc.Load(context.Background())
	require.NoError(t, err)
	return newModel(context.Background(), svc, loaded, meta, api.DefaultQueryState(), Options{Headers: true})
}

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func titles(m model) []string {
	out := make([]string, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it.Note.Title)
	}
	return out
}

func TestModelInitialOrder(t *testing.T) {
	m := testModel(t)
	require.Equal(t, []string{"Bread", "Cherries", "Apples"}, titles(m))
	require.Len(t, m.table.Rows(), 3)
	require.Equal(t, "sourdough", m.table.Rows()[0][1])
}

func TestModelSortKeys(t *testing.T) {
	m := testModel(t)

	m = press(t, m, keys("s"), keys("s"))
	require.Equal(t, api.SortTitle, m.st.Field)
	require.Equal(t, []string{"Cherries", "Bread", "Apples"}, titles(m))

	m = press(t, m, keys("o"))
	require.Equal(t, api.Asc, m.st.Order)
	require.Equal(t, []string{"Apples", "Bread", "Cherries"}, titles(m))

	m = press(t, m, keys("s"))
	require.Equal(t, api.SortUpdated, m.st.Field)
}

func TestModelLiveSearch(t *testing.T) {
	m := testModel(t)

	m = press(t, m, keys("/"))
	require.NotNil(t, m.search)

	m = press(t, m, keys("r"), keys("e"), keys("d"))
	require.Equal(t, "red", m.st.Search)
	require.Equal(t, []string{"Cherries", "Apples"}, titles(m))

	// esc restores the search that was active when the box opened
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, m.search)
	require.Equal(t, "", m.st.Search)
	require.Len(t, m.items, 3)

	m = press(t, m, keys("/"), keys("x"), keys("y"), keys("z"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, m.search)
	require.Empty(t, m.items)
	require.Contains(t, m.View(), "No notes found")

	// esc on the list clears an active search before quitting
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Len(t, m.items, 3)
}

func TestModelShowNote(t *testing.T) {
	m := testModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.NotNil(t, m.note)
	require.Equal(t, "b", m.note.key)
	require.NotNil(t, cmd)

	msg := cmd()
	rendered, ok := msg.(noteRenderedMsg)
	require.True(t, ok)
	require.NoError(t, rendered.err)
	require.Contains(t, rendered.content, "sourdough")

	m = press(t, m, rendered)
	require.Contains(t, m.note.content, "sourdough")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, m.note)
}

func TestModelReload(t *testing.T) {
	m := testModel(t)

	next, cmd := m.Update(keys("r"))
	m = next.(model)
	require.NotNil(t, cmd)
	m = press(t, m, cmd())
	require.Equal(t, "Reloaded", m.status)
	require.Len(t, m.items, 3)
	require.Contains(t, m.renderHeader(), "Last synced: Never | Total notes: 3")
}
