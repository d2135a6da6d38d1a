// Package query filters and orders a normalized note collection for the list
// view. It keeps no state between runs; every call sees a full snapshot.
package query

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/mithrel/notedeck/pkg/api"
)

const (
	PreviewLength = 150
	Ellipsis      = "..."
)

// Engine runs queries. It only holds a logger for debug output.
type Engine struct {
	log *slog.Logger
}

// New returns an Engine; a nil logger uses slog.Default().
func New(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{log: log}
}

// Run returns the notes matching st.Search, ordered by st.Field and st.Order.
// The input slice is not modified.
func Run(notes []api.NormalizedNote, st api.QueryState) []api.NormalizedNote {
	return New(nil).Run(notes, st)
}

// List is Run with a preview per note.
func List(notes []api.NormalizedNote, st api.QueryState) []api.ListItem {
	return New(nil).List(notes, st)
}

func (e *Engine) Run(notes []api.NormalizedNote, st api.QueryState) []api.NormalizedNote {
	items := e.List(notes, st)
	out := make([]api.NormalizedNote, len(items))
	for i, it := range items {
		out[i] = it.Note
	}
	return out
}

type candidate struct {
	note api.NormalizedNote
	text string
}

func (e *Engine) List(notes []api.NormalizedNote, st api.QueryState) []api.ListItem {
	needle := strings.ToLower(st.Search)
	cands := make([]candidate, 0, len(notes))
	for _, n := range notes {
		text := ExtractText(n.BodyDisplay)
		if needle != "" && !matches(n.Title, text, needle) {
			continue
		}
		cands = append(cands, candidate{note: n, text: text})
	}

	slices.SortStableFunc(cands, func(a, b candidate) int {
		return Compare(a.note, b.note, st.Field, st.Order)
	})

	out := make([]api.ListItem, len(cands))
	for i, c := range cands {
		out[i] = api.ListItem{Note: c.note, Preview: Preview(c.text)}
	}
	if len(out) > 0 {
		e.log.Debug("sorted notes",
			"count", len(out),
			"field", st.Field,
			"order", st.Order,
			"first", out[0].Note.Title,
			"last", out[len(out)-1].Note.Title,
		)
	}
	return out
}

func matches(title, text, needle string) bool {
	return strings.Contains(strings.ToLower(title), needle) ||
		strings.Contains(strings.ToLower(text), needle)
}

// Compare orders two notes by field. Date fields compare the raw strings
// byte-wise, which matches chronological order for fixed-width ISO-8601;
// a missing date is "" and sorts first ascending. Other fields compare
// case-insensitively; an unknown field yields "" for every note, so all
// notes tie. Desc negates the result, so ties stay ties in both directions.
func Compare(a, b api.NormalizedNote, field api.SortField, order api.SortOrder) int {
	va, vb := fieldValue(a, field), fieldValue(b, field)
	if !field.IsDate() {
		va, vb = strings.ToLower(va), strings.ToLower(vb)
	}
	c := strings.Compare(va, vb)
	if order == api.Desc {
		return -c
	}
	return c
}

func fieldValue(n api.NormalizedNote, field api.SortField) string {
	switch field {
	case api.SortUpdated:
		return n.UpdatedDate
	case api.SortCreated:
		return n.CreatedDate
	case api.SortTitle:
		return n.Title
	default:
		return ""
	}
}
