package present

import (
	"context"
	"fmt"
	"io"

	"github.com/mithrel/notedeck/internal/notes"
	"github.com/mithrel/notedeck/internal/present/format"
	"github.com/mithrel/notedeck/internal/present/tui"
	"github.com/mithrel/notedeck/internal/render"
	"github.com/mithrel/notedeck/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeTUI
	ModeHTML
	ModeRaw
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Render     render.TermOptions
	Query      api.QueryState
	// Querier backs the interactive list; required for ModeTUI.
	Querier tui.Querier
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "tui", "html", "raw".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "tui":
		return ModeTUI, true
	case "html":
		return ModeHTML, true
	case "raw":
		return ModeRaw, true
	default:
		return ModePlain, false
	}
}

// Summary is the status line shown above every list.
func Summary(l notes.Listing) string {
	return fmt.Sprintf("Last synced: %s | Total notes: %d", l.LastSync, l.Total)
}

// RenderList renders the list view according to options.
func RenderList(ctx context.Context, w io.Writer, l notes.Listing, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, l, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONItems(w, l.Items)
	case ModePretty:
		return format.WritePrettyList(w, l.Items, Summary(l), opts.Render)
	case ModeTUI:
		if opts.Querier == nil {
			return fmt.Errorf("tui output needs a querier")
		}
		return tui.RenderTable(ctx, opts.Querier, l.Notes, l.Metadata, opts.Query, tui.Options{Headers: opts.Headers, Render: opts.Render})
	case ModeHTML, ModeRaw:
		return fmt.Errorf("output mode not supported for lists")
	default:
		if opts.Headers {
			if _, err := fmt.Fprintln(w, Summary(l)); err != nil {
				return err
			}
		}
		return format.WritePlainList(w, l.Items, opts.Headers)
	}
}

// RenderNote renders a single note according to options.
func RenderNote(ctx context.Context, w io.Writer, d api.Detail, opts Options) error {
	switch opts.Mode {
	case ModeJSON, ModeNDJSON:
		return format.WriteJSON(w, d, opts.JSONIndent && opts.Mode == ModeJSON)
	case ModePretty, ModeTUI:
		return format.WritePrettyNote(w, d, opts.Render)
	case ModeHTML:
		return format.WriteHTMLNote(w, d)
	case ModeRaw:
		return format.WriteRawNote(w, d)
	default:
		return format.WritePlainNote(w, d)
	}
}
