// Package normalize turns a raw note body into its display form: a title
// restated at the top of the body is removed and the remainder is classified
// as HTML or text (Markdown and plain text are not told apart here).
package normalize

import (
	"strings"
	"unicode"

	"github.com/mithrel/notedeck/pkg/api"
)

// Policy controls which normalization steps run.
type Policy struct {
	// StripTitle removes a leading plain, Markdown-heading or HTML-heading
	// restatement of the title from the body.
	StripTitle bool
}

// Default strips duplicated titles.
var Default = Policy{StripTitle: true}

// Result is the outcome of normalizing one body.
type Result struct {
	Kind api.ContentKind
	Body string
}

// Normalize applies the Default policy.
func Normalize(title, body string) Result { return Default.Normalize(title, body) }

// Normalize is a pure function of (title, body). Each strip step runs at most
// once, in order: plain prefix, Markdown heading, HTML heading.
func (p Policy) Normalize(title, body string) Result {
	if strings.TrimSpace(body) == "" {
		return Result{Kind: api.KindText}
	}
	if p.StripTitle && title != "" {
		body = stripPlainPrefix(title, body)
		body = stripMarkdownHeading(title, body)
		body = stripHTMLHeading(title, body)
	}
	body = strings.TrimLeftFunc(body, unicode.IsSpace)
	return Result{Kind: Classify(body), Body: body}
}

// Note normalizes a raw record.
func (p Policy) Note(raw api.RawNote) api.NormalizedNote {
	r := p.Normalize(raw.Title, raw.Body)
	return api.NormalizedNote{RawNote: raw, ContentKind: r.Kind, BodyDisplay: r.Body}
}

// Notes normalizes a whole snapshot, preserving order.
func (p Policy) Notes(raws []api.RawNote) []api.NormalizedNote {
	out := make([]api.NormalizedNote, 0, len(raws))
	for _, r := range raws {
		out = append(out, p.Note(r))
	}
	return out
}

var htmlMarkers = []string{"<div>", "<p>", "<h1>"}

// Classify sniffs for a handful of literal block tags.
func Classify(body string) api.ContentKind {
	for _, m := range htmlMarkers {
		if strings.Contains(body, m) {
			return api.KindHTML
		}
	}
	return api.KindText
}

// stripPlainPrefix is case-sensitive. The body comes back trimmed only when
// the title was found.
func stripPlainPrefix(title, body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, title) {
		return body
	}
	return strings.TrimSpace(trimmed[len(title):])
}
