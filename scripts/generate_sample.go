package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"
	"time"
)

// note mirrors one record under "notes" in an exported snapshot.
type note struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	CreatedDate *string `json:"created_date"`
	UpdatedDate *string `json:"updated_date"`
}

type metadata struct {
	LastSync     string `json:"last_sync"`
	NoteCount    int    `json:"note_count"`
	DeletedCount int    `json:"deleted_count"`
}

type document struct {
	Metadata metadata        `json:"metadata"`
	Notes    map[string]note `json:"notes"`
}

const epochSentinel = "1970-01-01T00:00:00Z"

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	const total = 500
	base := time.Now().UTC().Truncate(time.Second)
	doc := document{Notes: make(map[string]note, total)}

	for i := 0; i < total; i++ {
		id := fmt.Sprintf("x-coredata://sample/ICNote/p%d", i+1)
		title := fmt.Sprintf("Sample Note %03d", i+1)

		// Stagger timestamps backwards to look natural
		created := base.Add(-time.Duration(30*i+mr.Intn(60)) * time.Minute)
		// Some entries get later updates; most keep same
		updated := created.Add(time.Duration(mr.Intn(180)) * time.Minute)
		if mr.Float64() < 0.7 {
			updated = created
		}
		createdStr := created.Format(time.RFC3339)
		updatedStr := updated.Format(time.RFC3339)

		n := note{
			ID:          id,
			Title:       title,
			Body:        sampleBody(mr, title, i),
			CreatedDate: &createdStr,
			UpdatedDate: &updatedStr,
		}
		switch {
		case i%50 == 7:
			sentinel := epochSentinel
			n.CreatedDate = &sentinel
		case i%50 == 13:
			n.UpdatedDate = nil
		}
		doc.Notes[storeKey(id)] = n
	}
	doc.Metadata = metadata{LastSync: base.Format(time.RFC3339), NoteCount: total}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		panic(err)
	}
}

// sampleBody mixes the shapes a synced note body can take.
func sampleBody(r *mrand.Rand, title string, i int) string {
	text := fmt.Sprintf("This is the body for sample note %03d.", i+1)
	switch r.Intn(4) {
	case 0:
		return title + "\n\n" + text
	case 1:
		return "# " + title + "\n\n" + text + "\n\n- [link](https://example.com)\n- **bold** item"
	case 2:
		return "<div><h1>" + title + "</h1></div><div>" + text + "</div>"
	default:
		return text
	}
}

// storeKey replaces characters the key-value store rejects in keys.
func storeKey(id string) string {
	out := make([]rune, 0, len(id))
	for _, c := range id {
		switch c {
		case '.', '$', '#', '[', ']', '/', ':':
			out = append(out, '_')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
