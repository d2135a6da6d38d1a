// Package notes assembles list and detail views from a snapshot source. It
// holds no per-query state: every call loads a fresh snapshot and runs the
// normalize, query and date steps on it.
package notes

import (
	"context"
	"log/slog"

	"github.com/mithrel/notedeck/internal/datefmt"
	"github.com/mithrel/notedeck/internal/normalize"
	"github.com/mithrel/notedeck/internal/query"
	"github.com/mithrel/notedeck/internal/snapshot"
	"github.com/mithrel/notedeck/pkg/api"
)

// NeverSynced is shown when the collection has no sync timestamp.
const NeverSynced = "Never"

type Options struct {
	Policy       normalize.Policy
	ListLayout   datefmt.Layout
	DetailLayout datefmt.Layout
}

// DefaultOptions strips titles, shows short dates in lists and long dates in detail.
func DefaultOptions() Options {
	return Options{Policy: normalize.Default, ListLayout: datefmt.ShortForm, DetailLayout: datefmt.LongForm}
}

type Service struct {
	src   snapshot.Source
	dates *datefmt.Formatter
	query *query.Engine
	log   *slog.Logger
	opts  Options
}

func New(src snapshot.Source, dates *datefmt.Formatter, log *slog.Logger, opts Options) *Service {
	if log == nil {
		log = slog.Default()
	}
	if dates == nil {
		dates = datefmt.New(log, nil)
	}
	return &Service{src: src, dates: dates, query: query.New(log), log: log, opts: opts}
}

// Listing is the list view for one query run.
type Listing struct {
	Items    []api.ListItem       `json:"items"`
	Notes    []api.NormalizedNote `json:"-"` // full normalized set, for interactive re-querying
	Metadata api.Metadata         `json:"metadata"`
	LastSync string               `json:"last_sync"`
	Total    int                  `json:"total"`
}

// Load fetches and normalizes the current snapshot.
func (s *Service) Load(ctx context.Context) ([]api.NormalizedNote, api.Metadata, error) {
	snap, err := s.src.Load(ctx)
	if err != nil {
		return nil, api.Metadata{}, err
	}
	if len(snap.Skipped) > 0 {
		s.log.Warn("skipped malformed notes", "count", len(snap.Skipped), "keys", snap.Skipped)
	}
	return s.opts.Policy.Notes(snap.Notes), snap.Metadata, nil
}

// List runs st against the current snapshot.
func (s *Service) List(ctx context.Context, st api.QueryState) (Listing, error) {
	notes, meta, err := s.Load(ctx)
	if err != nil {
		return Listing{}, err
	}
	return Listing{
		Items:    s.Items(notes, st),
		Notes:    notes,
		Metadata: meta,
		LastSync: s.LastSync(meta),
		Total:    meta.Total(len(notes)),
	}, nil
}

// Items queries an already loaded set and fills in display dates.
func (s *Service) Items(notes []api.NormalizedNote, st api.QueryState) []api.ListItem {
	items := s.query.List(notes, st)
	for i := range items {
		items[i].Updated = s.dates.Format(items[i].Note.UpdatedDate, s.opts.ListLayout)
	}
	return items
}

// LastSync formats the sync time, or NeverSynced.
func (s *Service) LastSync(meta api.Metadata) string {
	if meta.LastSync == "" {
		return NeverSynced
	}
	return s.dates.Format(meta.LastSync, s.opts.ListLayout)
}

// Show returns the detail view for key; a missing key wraps snapshot.ErrNotFound.
func (s *Service) Show(ctx context.Context, key string) (api.Detail, error) {
	snap, err := s.src.Load(ctx)
	if err != nil {
		return api.Detail{}, err
	}
	raw, err := snap.Lookup(key)
	if err != nil {
		return api.Detail{}, err
	}
	return s.Detail(s.opts.Policy.Note(raw)), nil
}

// Detail builds the detail view for a normalized note.
func (s *Service) Detail(n api.NormalizedNote) api.Detail {
	return api.Detail{
		Note:    n,
		Created: s.dates.Format(n.CreatedDate, s.opts.DetailLayout),
		Updated: s.dates.Format(n.UpdatedDate, s.opts.DetailLayout),
	}
}
