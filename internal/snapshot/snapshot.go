// Package snapshot decodes the note collection exported by the realtime
// database: a "notes" object keyed by note key and a "metadata" record.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mithrel/notedeck/pkg/api"
)

var (
	ErrNotFound = errors.New("not found")
	ErrFetch    = errors.New("failed to fetch")
	ErrNoSource = errors.New("no snapshot source configured")
)

// Snapshot is one complete, self-consistent view of the collection.
type Snapshot struct {
	Notes    []api.RawNote // ordered by Key
	Metadata api.Metadata
	// Skipped holds keys of records that were dropped while decoding.
	Skipped []string
}

// Lookup finds a note by key.
func (s Snapshot) Lookup(key string) (api.RawNote, error) {
	i := sort.Search(len(s.Notes), func(i int) bool { return s.Notes[i].Key >= key })
	if i < len(s.Notes) && s.Notes[i].Key == key {
		return s.Notes[i], nil
	}
	return api.RawNote{}, fmt.Errorf("note %q: %w", key, ErrNotFound)
}

type document struct {
	Notes    json.RawMessage `json:"notes"`
	Metadata *metaRecord     `json:"metadata"`
}

type noteRecord struct {
	ID          looseString `json:"id"`
	Title       looseString `json:"title"`
	Body        looseString `json:"body"`
	CreatedDate looseString `json:"created_date"`
	UpdatedDate looseString `json:"updated_date"`
}

type metaRecord struct {
	LastSync     looseString `json:"last_sync"`
	NoteCount    looseInt    `json:"note_count"`
	DeletedCount looseInt    `json:"deleted_count"`
}

// Decode reads a snapshot document. Records that are not objects, or whose id
// marks a failed export, are skipped rather than failing the whole snapshot.
func Decode(r io.Reader) (Snapshot, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	raw, err := noteMap(doc.Notes)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		note, ok := decodeNote(k, raw[k])
		if !ok {
			snap.Skipped = append(snap.Skipped, k)
			continue
		}
		snap.Notes = append(snap.Notes, note)
	}
	if m := doc.Metadata; m != nil {
		snap.Metadata = api.Metadata{
			LastSync:     string(m.LastSync),
			NoteCount:    int(m.NoteCount),
			DeletedCount: int(m.DeletedCount),
		}
	}
	return snap, nil
}

// noteMap accepts an object keyed by note key, or the array form the database
// returns when keys are small integers.
func noteMap(data json.RawMessage) (map[string]json.RawMessage, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err == nil {
		return m, nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("decode snapshot notes: %w", err)
	}
	m = make(map[string]json.RawMessage, len(arr))
	for i, v := range arr {
		m[strconv.Itoa(i)] = v
	}
	return m, nil
}

func decodeNote(key string, data json.RawMessage) (api.RawNote, bool) {
	var rec noteRecord
	if len(data) == 0 || data[0] != '{' {
		return api.RawNote{}, false
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return api.RawNote{}, false
	}
	note := api.RawNote{
		Key:         key,
		ID:          string(rec.ID),
		Title:       stripControl(string(rec.Title)),
		Body:        stripControl(string(rec.Body)),
		CreatedDate: string(rec.CreatedDate),
		UpdatedDate: string(rec.UpdatedDate),
	}
	if note.ID == "" {
		note.ID = key
	}
	if strings.HasPrefix(note.ID, "unknown-id-") {
		return api.RawNote{}, false
	}
	return note, true
}

var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

func stripControl(s string) string { return controlChars.ReplaceAllString(s, "") }

// looseString decodes strings as-is, numbers and bools as text, anything else as "".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*s = looseString(x)
	case float64:
		*s = looseString(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*s = looseString(strconv.FormatBool(x))
	default:
		*s = ""
	}
	return nil
}

// looseInt decodes numbers and numeric strings; anything else is 0.
type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*n = looseInt(x)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			*n = 0
			return nil
		}
		*n = looseInt(i)
	default:
		*n = 0
	}
	return nil
}
