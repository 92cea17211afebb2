package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/commitsuggest/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_HasExpectedBindings(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()
	runes := func(r rune) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	}

	t.Run("scroll bindings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runes('k'), km.Up))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyUp}, km.Up))
		assert.True(t, key.Matches(runes('j'), km.Down))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyDown}, km.Down))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlU}, km.HalfPageUp))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlD}, km.HalfPageDown))
		assert.True(t, key.Matches(runes('g'), km.GotoTop))
		assert.True(t, key.Matches(runes('G'), km.GotoBottom))
	})

	t.Run("action bindings", func(t *testing.T) {
		t.Parallel()
		assert.True(t, key.Matches(runes('c'), km.Copy))
		assert.True(t, key.Matches(runes('y'), km.Copy))
		assert.True(t, key.Matches(runes('r'), km.Regenerate))
		assert.True(t, key.Matches(runes('q'), km.Quit))
		assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	})
}
