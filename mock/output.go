package mock

import "github.com/fwojciec/commitsuggest"

// Compile-time interface verification.
var (
	_ commitsuggest.Clipboard   = (*Clipboard)(nil)
	_ commitsuggest.Notifier    = (*Notifier)(nil)
	_ commitsuggest.Renderer    = (*Renderer)(nil)
	_ commitsuggest.Highlighter = (*Highlighter)(nil)
)

// Clipboard is a mock implementation of commitsuggest.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Notifier is a mock implementation of commitsuggest.Notifier.
type Notifier struct {
	NotifySuggestionFn func(s *commitsuggest.Suggestion) error
}

func (n *Notifier) NotifySuggestion(s *commitsuggest.Suggestion) error {
	return n.NotifySuggestionFn(s)
}

// Renderer is a mock implementation of commitsuggest.Renderer.
type Renderer struct {
	RenderFn func(text string) (string, error)
}

func (r *Renderer) Render(text string) (string, error) {
	return r.RenderFn(text)
}

// Highlighter is a mock implementation of commitsuggest.Highlighter.
type Highlighter struct {
	HighlightFn func(text string) (string, error)
}

func (h *Highlighter) Highlight(text string) (string, error) {
	return h.HighlightFn(text)
}
