package chroma_test

import (
	"io"
	"strings"
	"testing"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/commitsuggest"
	"github.com/fwojciec/commitsuggest/chroma"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `main.go
diff --git a/main.go b/main.go
index 3b18e51..a3c2f1d 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 package main
-func old() {}
+func updated() {}
`

func testStyles() commitsuggest.Styles {
	return commitsuggest.Styles{
		Added:   commitsuggest.ColorPair{Foreground: "#00ff00"},
		Deleted: commitsuggest.ColorPair{Foreground: "#ff0000"},
		Accent:  commitsuggest.ColorPair{Foreground: "#0000ff"},
		Warning: commitsuggest.ColorPair{Foreground: "#ffff00"},
	}
}

func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func TestStyleFromStyles(t *testing.T) {
	t.Parallel()

	styleFunc := chroma.StyleFromStyles(testStyles())

	assert.Equal(t, "#00ff00", styleFunc(chromalib.GenericInserted).Foreground)
	assert.Equal(t, "#ff0000", styleFunc(chromalib.GenericDeleted).Foreground)
	assert.Equal(t, "#0000ff", styleFunc(chromalib.GenericSubheading).Foreground)
	assert.Equal(t, "#0000ff", styleFunc(chromalib.GenericHeading).Foreground)
	assert.Empty(t, styleFunc(chromalib.Text).Foreground)
}

func TestNewHighlighter_RequiresStyleFunc(t *testing.T) {
	t.Parallel()

	_, err := chroma.NewHighlighter(nil, nil)

	assert.Error(t, err)
}

func TestHighlighter_TokenizeLines(t *testing.T) {
	t.Parallel()

	h, err := chroma.NewHighlighter(chroma.StyleFromStyles(testStyles()), plainRenderer())
	require.NoError(t, err)

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		lines, err := h.TokenizeLines("")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("one slice per line", func(t *testing.T) {
		t.Parallel()
		lines, err := h.TokenizeLines(sampleDiff)
		require.NoError(t, err)
		assert.Len(t, lines, strings.Count(sampleDiff, "\n"))
	})

	t.Run("added and deleted lines carry diff colors", func(t *testing.T) {
		t.Parallel()
		lines, err := h.TokenizeLines("-old\n+new\n")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		require.NotEmpty(t, lines[0])
		require.NotEmpty(t, lines[1])
		assert.Equal(t, "#ff0000", lines[0][0].Style.Foreground)
		assert.Equal(t, "#00ff00", lines[1][0].Style.Foreground)
	})
}

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	t.Run("adds color escapes", func(t *testing.T) {
		t.Parallel()
		h, err := chroma.NewHighlighter(chroma.StyleFromStyles(testStyles()), trueColorRenderer())
		require.NoError(t, err)

		out, err := h.Highlight(sampleDiff)

		require.NoError(t, err)
		assert.Contains(t, out, "\x1b[")
		assert.Contains(t, out, "+func updated() {}")
		assert.Contains(t, out, "-func old() {}")
	})

	t.Run("preserves text without color support", func(t *testing.T) {
		t.Parallel()
		h, err := chroma.NewHighlighter(chroma.StyleFromStyles(testStyles()), plainRenderer())
		require.NoError(t, err)

		out, err := h.Highlight(sampleDiff)

		require.NoError(t, err)
		assert.Equal(t, sampleDiff, out)
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		h, err := chroma.NewHighlighter(chroma.StyleFromStyles(testStyles()), plainRenderer())
		require.NoError(t, err)

		out, err := h.Highlight("")

		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
