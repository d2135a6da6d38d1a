package format

import (
	"fmt"
	"html"
	"io"

	"github.com/mithrel/notedeck/internal/render"
	"github.com/mithrel/notedeck/pkg/api"
)

// WriteHTMLNote writes a standalone <article> for the note.
func WriteHTMLNote(w io.Writer, d api.Detail) error {
	body, err := render.HTML(d.Note.ContentKind, d.Note.BodyDisplay)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, `<article class="note-detail">
<h2>%s</h2>
<div class="note-dates"><p>Created: %s</p><p>Last Updated: %s</p></div>
<div class="note-content">
%s
</div>
</article>
`, html.EscapeString(d.Note.Title), html.EscapeString(d.Created), html.EscapeString(d.Updated), body)
	return err
}
