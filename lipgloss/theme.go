// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import "github.com/fwojciec/commitsuggest"

// Compile-time interface verification.
var _ commitsuggest.Theme = (*Theme)(nil)

// Theme implements commitsuggest.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles commitsuggest.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() commitsuggest.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the named theme. Unknown names fall back to DefaultTheme.
func ThemeByName(name string) *Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DefaultTheme()
	}
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: commitsuggest.Styles{
			Title: commitsuggest.ColorPair{
				Foreground: "#f9e2af", // Yellow
				Background: "#313244", // Dark surface
			},
			Suggestion: commitsuggest.ColorPair{
				Foreground: "#cdd6f4", // Text (Catppuccin Mocha)
			},
			Muted: commitsuggest.ColorPair{
				Foreground: "#6c7086", // Muted gray
			},
			Error: commitsuggest.ColorPair{
				Foreground: "#f38ba8", // Red
			},
			Warning: commitsuggest.ColorPair{
				Foreground: "#fab387", // Peach
			},
			Added: commitsuggest.ColorPair{
				Foreground: "#a6e3a1", // Green
			},
			Deleted: commitsuggest.ColorPair{
				Foreground: "#f38ba8", // Red
			},
			Accent: commitsuggest.ColorPair{
				Foreground: "#89b4fa", // Blue
			},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: commitsuggest.Styles{
			Title: commitsuggest.ColorPair{
				Foreground: "#df8e1d", // Yellow
				Background: "#e6e9ef", // Light surface
			},
			Suggestion: commitsuggest.ColorPair{
				Foreground: "#4c4f69", // Text (Catppuccin Latte)
			},
			Muted: commitsuggest.ColorPair{
				Foreground: "#9ca0b0",
			},
			Error: commitsuggest.ColorPair{
				Foreground: "#d20f39",
			},
			Warning: commitsuggest.ColorPair{
				Foreground: "#fe640b",
			},
			Added: commitsuggest.ColorPair{
				Foreground: "#40a02b",
			},
			Deleted: commitsuggest.ColorPair{
				Foreground: "#d20f39",
			},
			Accent: commitsuggest.ColorPair{
				Foreground: "#1e66f5",
			},
		},
	}
}
