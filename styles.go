package commitsuggest

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the elements of the suggestion view.
type Styles struct {
	Title      ColorPair // Header bar with the repository path
	Suggestion ColorPair // Model output
	Muted      ColorPair // Status line and help text
	Error      ColorPair // Failure messages
	Warning    ColorPair // Truncation and omission notices
	Added      ColorPair // Added line counts in the file summary
	Deleted    ColorPair // Deleted line counts in the file summary
	Accent     ColorPair // Spinner and key hints
}

// Theme provides styles for rendering suggestions.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}
