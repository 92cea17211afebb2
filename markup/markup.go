// Package markup renders suggestion text as HTML using goldmark.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/commitsuggest"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Compile-time interface verification.
var _ commitsuggest.Renderer = (*HTML)(nil)

// HTML converts Markdown suggestions to HTML. Text that is already HTML is
// returned unchanged.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML creates an HTML renderer with GitHub Flavored Markdown enabled.
func NewHTML() *HTML {
	return &HTML{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Render implements commitsuggest.Renderer.
func (h *HTML) Render(text string) (string, error) {
	if LooksLikeHTML(text) {
		return text, nil
	}
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markup: convert: %w", err)
	}
	return buf.String(), nil
}

// LooksLikeHTML reports whether text starts with a tag and ends with one.
func LooksLikeHTML(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < 3 || t[0] != '<' || t[len(t)-1] != '>' {
		return false
	}
	// Rule out Markdown autolinks such as <https://example.com>.
	return strings.Contains(t, "</") || strings.Contains(t, "/>")
}
