package tui

import (
	"bytes"
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/notedeck/internal/present/format"
	"github.com/mithrel/notedeck/internal/render"
	"github.com/mithrel/notedeck/pkg/api"
)

// reloadResultMsg carries a freshly loaded snapshot back to Update.
type reloadResultMsg struct {
	notes []api.NormalizedNote
	meta  api.Metadata
	err   error
	dur   time.Duration
}

// noteRenderedMsg carries the glamour output for the note modal.
type noteRenderedMsg struct {
	key     string
	content string
	err     error
}

func reloadCmd(ctx context.Context, q Querier) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		notes, meta, err := q.Load(ctx)
		return reloadResultMsg{notes: notes, meta: meta, err: err, dur: time.Since(start)}
	}
}

func renderNoteCmd(q Querier, n api.NormalizedNote, opts render.TermOptions) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		err := format.WritePrettyNote(&buf, q.Detail(n), opts)
		return noteRenderedMsg{key: n.Key, content: buf.String(), err: err}
	}
}
