package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/notedeck/pkg/api"
)

// TSV columns: key, title, updated, preview
var headerLine = "key\ttitle\tupdated\tpreview\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func WritePlainList(w io.Writer, items []api.ListItem, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, it := range items {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
			esc(it.Note.Key), esc(it.Note.Title), esc(it.Updated), esc(it.Preview))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WritePlainNote writes the detail view followed by the display body as-is.
func WritePlainNote(w io.Writer, d api.Detail) error {
	_, err := fmt.Fprintf(w,
		"Key: %s\nTitle: %s\nCreated: %s\nLast Updated: %s\nContent: %s\n---\n%s\n",
		d.Note.Key,
		d.Note.Title,
		d.Created,
		d.Updated,
		d.Note.ContentKind,
		d.Note.BodyDisplay,
	)
	return err
}

// WriteRawNote writes only the display body, for piping into another renderer.
func WriteRawNote(w io.Writer, d api.Detail) error {
	body := d.Note.BodyDisplay
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	_, err := io.WriteString(w, body)
	return err
}
