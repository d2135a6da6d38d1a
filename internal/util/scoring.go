package util

import (
	"github.com/sahilm/fuzzy"

	"github.com/mithrel/notedeck/pkg/api"
)

// ScoreCompletions returns the top N matches for the input string from the candidates list.
func ScoreCompletions(input string, candidates []string, n int) []string {
	if input == "" {
		return candidates
	}
	matches := fuzzy.Find(input, candidates)
	if len(matches) == 0 {
		return nil
	}
	limit := n
	if n <= 0 || len(matches) < limit {
		limit = len(matches)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = matches[i].Str
	}
	return out
}

// noteSource matches against "key title" so either can be typed.
type noteSource []api.RawNote

func (s noteSource) String(i int) string { return s[i].Key + " " + s[i].Title }
func (s noteSource) Len() int            { return len(s) }

// CompleteNotes returns shell completions of the form "key\ttitle", best match first.
func CompleteNotes(input string, notes []api.RawNote, n int) []string {
	var idx []int
	if input == "" {
		idx = make([]int, len(notes))
		for i := range notes {
			idx[i] = i
		}
	} else {
		for _, m := range fuzzy.FindFrom(input, noteSource(notes)) {
			idx = append(idx, m.Index)
		}
	}
	if n > 0 && len(idx) > n {
		idx = idx[:n]
	}
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, notes[i].Key+"\t"+notes[i].Title)
	}
	return out
}
