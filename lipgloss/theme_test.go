package lipgloss_test

import (
	"testing"

	"github.com/fwojciec/commitsuggest"
	"github.com/fwojciec/commitsuggest/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	t.Run("implements Theme interface", func(t *testing.T) {
		t.Parallel()

		var _ commitsuggest.Theme = lipgloss.DefaultTheme()
	})

	t.Run("is the dark theme", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lipgloss.DarkTheme().Styles(), lipgloss.DefaultTheme().Styles())
	})
}

func TestThemes_DefineEveryStyle(t *testing.T) {
	t.Parallel()

	for name, theme := range map[string]*lipgloss.Theme{
		"dark":  lipgloss.DarkTheme(),
		"light": lipgloss.LightTheme(),
	} {
		styles := theme.Styles()
		assert.NotEmpty(t, styles.Title.Foreground, name)
		assert.NotEmpty(t, styles.Suggestion.Foreground, name)
		assert.NotEmpty(t, styles.Muted.Foreground, name)
		assert.NotEmpty(t, styles.Error.Foreground, name)
		assert.NotEmpty(t, styles.Warning.Foreground, name)
		assert.NotEmpty(t, styles.Added.Foreground, name)
		assert.NotEmpty(t, styles.Deleted.Foreground, name)
		assert.NotEmpty(t, styles.Accent.Foreground, name)
	}
}

func TestThemeByName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lipgloss.LightTheme().Styles(), lipgloss.ThemeByName("light").Styles())
	assert.Equal(t, lipgloss.DarkTheme().Styles(), lipgloss.ThemeByName("dark").Styles())
	assert.Equal(t, lipgloss.DarkTheme().Styles(), lipgloss.ThemeByName("unknown").Styles())
}
