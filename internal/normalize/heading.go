package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxHeadingLevel = 6

// stripMarkdownHeading blanks the first line of the form "#{1,6} <title>",
// with optional spaces around the title. The title match is case-sensitive.
// The line break is kept so surrounding paragraphs stay separated.
func stripMarkdownHeading(title, body string) string {
	start := 0
	for {
		line := body[start:]
		next := strings.IndexByte(line, '\n')
		if next >= 0 {
			line = line[:next]
		}
		if isTitleHeading(line, title) {
			return body[:start] + body[start+len(line):]
		}
		if next < 0 {
			return body
		}
		start += next + 1
	}
}

func isTitleHeading(line, title string) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return false
	}
	rest := strings.TrimLeftFunc(line[level:], unicode.IsSpace)
	if !strings.HasPrefix(rest, title) {
		return false
	}
	return strings.TrimSpace(rest[len(title):]) == ""
}

// stripHTMLHeading removes the first <hN>title</hM> element, N and M in 1..6
// and not required to agree. Tags and title compare case-insensitively.
// Tags with attributes are not recognized.
func stripHTMLHeading(title, body string) string {
	for i := strings.IndexByte(body, '<'); i >= 0 && i < len(body); {
		if end, ok := matchHTMLHeading(body, i, title); ok {
			return body[:i] + body[end:]
		}
		n := strings.IndexByte(body[i+1:], '<')
		if n < 0 {
			break
		}
		i += n + 1
	}
	return body
}

func matchHTMLHeading(s string, i int, title string) (int, bool) {
	j, ok := headingTag(s, i, false)
	if !ok {
		return 0, false
	}
	j = skipSpace(s, j)
	if len(s)-j < len(title) || !strings.EqualFold(s[j:j+len(title)], title) {
		return 0, false
	}
	j = skipSpace(s, j+len(title))
	return headingTag(s, j, true)
}

// headingTag matches <hN> (or </hN> when closing) at s[i:] and returns the
// index just past '>'.
func headingTag(s string, i int, closing bool) (int, bool) {
	open := "<h"
	if closing {
		open = "</h"
	}
	if len(s)-i < len(open)+2 || !strings.EqualFold(s[i:i+len(open)], open) {
		return 0, false
	}
	i += len(open)
	if s[i] < '1' || s[i] > '0'+maxHeadingLevel || s[i+1] != '>' {
		return 0, false
	}
	return i + 2, true
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
