// Package chroma provides syntax highlighting of aggregated diffs using the chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/commitsuggest"
)

// Compile-time interface verification.
var _ commitsuggest.Highlighter = (*Highlighter)(nil)

// StyleFunc maps chroma token types to color pairs.
type StyleFunc func(chromalib.TokenType) commitsuggest.ColorPair

// Token is a run of text sharing one style.
type Token struct {
	Text  string
	Style commitsuggest.ColorPair
}

// Highlighter colors unified diff text for terminal output.
type Highlighter struct {
	styleFunc StyleFunc
	renderer  *lipgloss.Renderer
}

// NewHighlighter creates a diff highlighter with the given style function.
// Use StyleFromStyles to create a style function from commitsuggest.Styles.
// A nil renderer uses the lipgloss default renderer.
func NewHighlighter(styleFunc StyleFunc, renderer *lipgloss.Renderer) (*Highlighter, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	return &Highlighter{styleFunc: styleFunc, renderer: renderer}, nil
}

// Highlight returns text with ANSI styling applied per diff line.
// Line structure and content are preserved.
func (h *Highlighter) Highlight(text string) (string, error) {
	lines, err := h.TokenizeLines(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, line := range lines {
		for _, tok := range line {
			sb.WriteString(h.render(tok))
		}
		if i < len(lines)-1 || strings.HasSuffix(text, "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// TokenizeLines tokenizes diff text and splits tokens by line.
// Returns an empty slice for empty text.
func (h *Highlighter) TokenizeLines(text string) ([][]Token, error) {
	if text == "" {
		return [][]Token{}, nil
	}

	lexer := lexers.Get("diff")
	if lexer == nil {
		return nil, errors.New("chroma: diff lexer not registered")
	}
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		tokens = append(tokens, Token{Text: token.Value, Style: h.styleFunc(token.Type)})
	}
	return splitTokensByLine(tokens), nil
}

func (h *Highlighter) render(tok Token) string {
	if tok.Style == (commitsuggest.ColorPair{}) {
		return tok.Text
	}
	style := h.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if tok.Style.Foreground != "" {
		style = style.Foreground(lipgloss.Color(tok.Style.Foreground))
	}
	if tok.Style.Background != "" {
		style = style.Background(lipgloss.Color(tok.Style.Background))
	}
	return style.Render(tok.Text)
}

// splitTokensByLine splits a flat list of tokens into per-line token slices.
// A line break inside a token ends the current line.
func splitTokensByLine(tokens []Token) [][]Token {
	if len(tokens) == 0 {
		return [][]Token{}
	}

	var result [][]Token
	var currentLine []Token

	for _, tok := range tokens {
		if !strings.Contains(tok.Text, "\n") {
			currentLine = append(currentLine, tok)
			continue
		}

		parts := strings.Split(tok.Text, "\n")
		for i, part := range parts {
			if part != "" {
				currentLine = append(currentLine, Token{Text: part, Style: tok.Style})
			}
			if i < len(parts)-1 {
				result = append(result, currentLine)
				currentLine = nil
			}
		}
	}

	if len(currentLine) > 0 {
		result = append(result, currentLine)
	}

	return result
}
