package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/notedeck/pkg/api"
)

// WriteNDJSONItems writes list items as newline-delimited JSON objects.
func WriteNDJSONItems(w io.Writer, items []api.ListItem) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
