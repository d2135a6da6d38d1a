// Package render turns a note body into something a terminal or a browser can
// show. The body's content kind picks the path; normalization already happened.
package render

import (
	"bytes"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/mithrel/notedeck/pkg/api"
)

var (
	sanitizer = bluemonday.UGCPolicy()
	markdown  = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		// raw HTML inside Markdown is passed through, then sanitized
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
)

// TermOptions configures glamour.
type TermOptions struct {
	Style string // glamour standard style name, or "auto"
	Width int
}

// HTML returns sanitized HTML for the body.
func HTML(kind api.ContentKind, body string) (string, error) {
	if kind == api.KindHTML {
		return sanitizer.Sanitize(body), nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// MarkdownSource returns Markdown for the body; HTML bodies are sanitized and converted.
func MarkdownSource(kind api.ContentKind, body string) (string, error) {
	if kind != api.KindHTML {
		return body, nil
	}
	md, err := htmltomarkdown.ConvertString(sanitizer.Sanitize(body))
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// Terminal renders Markdown with glamour.
func Terminal(md string, opts TermOptions) (string, error) {
	r, err := glamour.NewTermRenderer(styleOption(opts.Style), glamour.WithWordWrap(opts.Width))
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func styleOption(style string) glamour.TermRendererOption {
	switch strings.TrimSpace(style) {
	case "", "auto":
		return glamour.WithAutoStyle()
	default:
		return glamour.WithStandardStyle(style)
	}
}
