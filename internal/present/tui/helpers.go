package tui

import (
	"strings"

	"github.com/mithrel/notedeck/pkg/api"
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// nextField cycles through the sortable fields.
func nextField(f api.SortField) api.SortField {
	for i, known := range api.SortFields {
		if known == f {
			return api.SortFields[(i+1)%len(api.SortFields)]
		}
	}
	return api.SortFields[0]
}

func toggleOrder(o api.SortOrder) api.SortOrder {
	if o == api.Asc {
		return api.Desc
	}
	return api.Asc
}

// oneLine flattens a preview so it fits a table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
