package query

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Markdown cleanup, applied in order after tags are removed. Links are
// rewritten before images, so an image leaves its "!" behind.
var markdownRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`#{1,6}\s`), ""},
	{regexp.MustCompile(`\*\*`), ""},
	{regexp.MustCompile(`\*`), ""},
	{regexp.MustCompile("(?s)```.*?```"), ""},
	{regexp.MustCompile("`"), ""},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`!\[([^\]]+)\]\([^)]+\)`), "$1"},
}

// ExtractText returns the plain text of a note body: markup tags are dropped
// (entities decoded), then common Markdown syntax is removed.
func ExtractText(body string) string {
	if body == "" {
		return ""
	}
	text := textContent(body)
	for _, r := range markdownRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return strings.TrimSpace(text)
}

// textContent concatenates the text tokens of an HTML fragment.
func textContent(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or a reader error on an in-memory string; either way we are done.
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// Preview truncates extracted text to PreviewLength runes, adding Ellipsis when cut.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= PreviewLength {
		return text
	}
	return string(r[:PreviewLength]) + Ellipsis
}
