package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/mithrel/notedeck/internal/render"
	"github.com/mithrel/notedeck/pkg/api"
)

// WritePrettyNote renders a note with glamour. HTML bodies are converted to
// Markdown first so the terminal gets the same treatment for both kinds.
func WritePrettyNote(w io.Writer, d api.Detail, opts render.TermOptions) error {
	body, err := render.MarkdownSource(d.Note.ContentKind, d.Note.BodyDisplay)
	if err != nil {
		return err
	}
	md := fmt.Sprintf(`# %s

> **Created:** %s
>
> **Last Updated:** %s

---

%s
`, d.Note.Title, d.Created, d.Updated, strings.TrimSpace(body))

	out, err := render.Terminal(md, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// WritePrettyList renders the list view as a Markdown document.
func WritePrettyList(w io.Writer, items []api.ListItem, summary string, opts render.TermOptions) error {
	var b strings.Builder
	b.WriteString("_" + summary + "_\n\n")
	if len(items) == 0 {
		b.WriteString("No notes found\n")
	}
	for _, it := range items {
		fmt.Fprintf(&b, "### %s\n\n", it.Note.Title)
		if it.Preview != "" {
			b.WriteString(it.Preview + "\n\n")
		}
		fmt.Fprintf(&b, "*Updated: %s* · `%s`\n\n", it.Updated, it.Note.Key)
	}
	out, err := render.Terminal(b.String(), opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
