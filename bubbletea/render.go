package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/commitsuggest"
)

// renderContent renders the viewport body for the current state.
func (m Model) renderContent() string {
	switch {
	case m.loading:
		return ""
	case m.err != nil:
		return m.style(m.styles.Error).Render("Error: " + m.err.Error())
	case m.suggestion == nil:
		return ""
	case m.suggestion.NotRepository:
		return m.style(m.styles.Warning).Render(m.suggestion.Text)
	}

	var sb strings.Builder
	sb.WriteString(m.renderSummary(m.suggestion))
	text := m.style(m.styles.Suggestion)
	if m.width > 0 {
		text = text.Width(m.width)
	}
	sb.WriteString(text.Render(strings.TrimSpace(m.suggestion.Text)))
	sb.WriteString("\n")
	return sb.String()
}

// renderSummary lists the files sent to the model and any collection problems.
func (m Model) renderSummary(s *commitsuggest.Suggestion) string {
	muted := m.style(m.styles.Muted)
	added := m.style(m.styles.Added)
	deleted := m.style(m.styles.Deleted)
	warning := m.style(m.styles.Warning)

	stats := make(map[string]commitsuggest.FileStat, len(s.Stats))
	for _, st := range s.Stats {
		stats[st.Path] = st
	}

	var sb strings.Builder
	if len(s.Files) == 0 {
		sb.WriteString(muted.Render("No changed files."))
		sb.WriteString("\n")
	}
	for _, f := range s.Files {
		sb.WriteString("  ")
		sb.WriteString(f)
		if st, ok := stats[f]; ok {
			if st.Binary {
				sb.WriteString(" " + muted.Render("binary"))
			} else {
				sb.WriteString(" " + added.Render(fmt.Sprintf("+%d", st.Added)))
				sb.WriteString(" " + deleted.Render(fmt.Sprintf("-%d", st.Deleted)))
			}
		}
		sb.WriteString("\n")
	}
	if s.Truncated {
		sb.WriteString(warning.Render(fmt.Sprintf("Diff collection stopped at %s; later files were not sent.", s.FailedFile)))
		sb.WriteString("\n")
	}
	for _, f := range s.Omitted {
		sb.WriteString(warning.Render("Diff unavailable: " + f))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// headerView renders the title bar with the repository path.
func (m Model) headerView() string {
	style := m.style(m.styles.Title).Bold(true)
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(" commitsuggest · " + m.path)
}

// statusBarView renders the spinner while loading, otherwise key help and status.
func (m Model) statusBarView() string {
	muted := m.style(m.styles.Muted)
	if m.loading {
		return m.spinner.View() + muted.Render(" Generating suggestion...")
	}

	help := []string{
		m.keymap.Copy.Help().Key + " " + m.keymap.Copy.Help().Desc,
		m.keymap.Regenerate.Help().Key + " " + m.keymap.Regenerate.Help().Desc,
		m.keymap.Quit.Help().Key + " " + m.keymap.Quit.Help().Desc,
	}
	bar := muted.Render(strings.Join(help, " · "))
	if m.status != "" {
		bar += "  " + m.style(m.styles.Accent).Render(m.status)
	}
	return bar
}

// style creates a lipgloss style from a color pair using the model's renderer.
func (m Model) style(cp commitsuggest.ColorPair) lipgloss.Style {
	return styleFromColorPair(cp, m.renderer)
}

func styleFromColorPair(cp commitsuggest.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}
