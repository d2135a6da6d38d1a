package api

import "strings"

// ContentKind classifies a note body for rendering.
type ContentKind string

const (
	// KindText covers both Markdown and plain text.
	KindText ContentKind = "text"
	KindHTML ContentKind = "html"
)

// RawNote is a note record as delivered by the data store. Every field may be empty.
type RawNote struct {
	Key         string `json:"key"` // store key; the collection is keyed by it
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	CreatedDate string `json:"created_date"`
	UpdatedDate string `json:"updated_date"`
}

// NormalizedNote is a RawNote with the duplicated title removed from the body
// and the remaining content classified. It is recomputed, never mutated.
type NormalizedNote struct {
	RawNote
	ContentKind ContentKind `json:"content_kind"`
	BodyDisplay string      `json:"body_display"`
}

// Metadata is the collection record written by the sync job. Passthrough only.
type Metadata struct {
	LastSync     string `json:"last_sync,omitempty"`
	NoteCount    int    `json:"note_count"`
	DeletedCount int    `json:"deleted_count,omitempty"`
}

// Total returns NoteCount, or fallback when the sync job did not record one.
func (m Metadata) Total(fallback int) int {
	if m.NoteCount > 0 {
		return m.NoteCount
	}
	return fallback
}

type SortField string

const (
	SortUpdated SortField = "updated_date"
	SortCreated SortField = "created_date"
	SortTitle   SortField = "title"
)

// SortFields lists the fields offered by list views, in display order.
var SortFields = []SortField{SortUpdated, SortCreated, SortTitle}

// IsDate reports whether the field is compared as a raw date string.
func (f SortField) IsDate() bool { return strings.Contains(string(f), "date") }

// ParseSortField accepts the known field names.
func ParseSortField(s string) (SortField, bool) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortFields {
		if f == known {
			return f, true
		}
	}
	return SortUpdated, false
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" and "desc".
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	default:
		return Desc, false
	}
}

// QueryState is owned by the list view and passed in on every query run.
type QueryState struct {
	Search string    `json:"search,omitempty"`
	Field  SortField `json:"sort_field"`
	Order  SortOrder `json:"sort_order"`
}

// DefaultQueryState sorts by last update, newest first.
func DefaultQueryState() QueryState {
	return QueryState{Field: SortUpdated, Order: Desc}
}

// ListItem is one row of the list view.
type ListItem struct {
	Note    NormalizedNote `json:"note"`
	Preview string         `json:"preview"`
	Updated string         `json:"updated,omitempty"` // formatted for display
}

// Detail is the single-note view.
type Detail struct {
	Note    NormalizedNote `json:"note"`
	Created string         `json:"created"`
	Updated string         `json:"updated"`
}
