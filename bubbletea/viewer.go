// Package bubbletea provides a terminal UI for commit suggestions using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/commitsuggest"
)

// SuggestFunc requests a suggestion. It runs outside the UI goroutine.
type SuggestFunc func(ctx context.Context) (*commitsuggest.Suggestion, error)

// suggestionMsg delivers the result of a request started by the model.
type suggestionMsg struct {
	seq        int
	suggestion *commitsuggest.Suggestion
	err        error
}

// Model is the Bubble Tea model for requesting and viewing a suggestion.
type Model struct {
	ctx     context.Context
	path    string
	suggest SuggestFunc

	clipboard commitsuggest.Clipboard
	styles    commitsuggest.Styles
	renderer  *lipgloss.Renderer
	keymap    KeyMap

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int

	loading    bool
	seq        int // Identifies the in-flight request; stale results are dropped
	suggestion *commitsuggest.Suggestion
	err        error
	status     string
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t commitsuggest.Theme) ModelOption {
	return func(m *Model) {
		m.styles = t.Styles()
	}
}

// WithClipboard enables copying the suggestion.
func WithClipboard(c commitsuggest.Clipboard) ModelOption {
	return func(m *Model) {
		m.clipboard = c
	}
}

// WithContext sets the context passed to SuggestFunc.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// NewModel creates a Model that requests a suggestion for path on start.
func NewModel(path string, suggest SuggestFunc, opts ...ModelOption) Model {
	m := Model{
		ctx:     context.Background(),
		path:    path,
		suggest: suggest,
		keymap:  DefaultKeyMap(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.spinner.Style = m.style(m.styles.Accent)
	return m
}

// Suggestion returns the last successful suggestion, if any.
func (m Model) Suggestion() *commitsuggest.Suggestion {
	return m.suggestion
}

// Err returns the error of the last request, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.request())
}

// request returns a command running the suggestion off the UI goroutine.
func (m Model) request() tea.Cmd {
	ctx, fn, seq := m.ctx, m.suggest, m.seq
	return func() tea.Msg {
		s, err := fn(ctx)
		return suggestionMsg{seq: seq, suggestion: s, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-2, 1) // header and status bar
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case suggestionMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.suggestion = msg.suggestion
		m.err = msg.err
		if m.ready {
			m.viewport.SetContent(m.renderContent())
			m.viewport.GotoTop()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Copy):
			m.status = m.copySuggestion()
			return m, nil
		case key.Matches(msg, m.keymap.Regenerate):
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.seq++
			m.suggestion = nil
			m.err = nil
			m.status = ""
			if m.ready {
				m.viewport.SetContent(m.renderContent())
			}
			return m, tea.Batch(m.spinner.Tick, m.request())
		case key.Matches(msg, m.keymap.GotoTop):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) copySuggestion() string {
	switch {
	case m.clipboard == nil:
		return "clipboard unavailable"
	case m.suggestion == nil || m.suggestion.NotRepository:
		return "nothing to copy"
	}
	if err := m.clipboard.Copy(m.suggestion.Text); err != nil {
		return fmt.Sprintf("copy failed: %v", err)
	}
	return "copied to clipboard"
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.statusBarView())
}

// Viewer runs the suggestion TUI.
type Viewer struct {
	opts []ModelOption
}

// NewViewer creates a new Viewer.
func NewViewer(opts ...ModelOption) *Viewer {
	return &Viewer{opts: opts}
}

// Run displays the suggestion for path and blocks until the user exits.
// It returns the last suggestion shown, or the request error.
func (v *Viewer) Run(ctx context.Context, path string, suggest SuggestFunc) (*commitsuggest.Suggestion, error) {
	opts := append([]ModelOption{WithContext(ctx)}, v.opts...)
	m := NewModel(path, suggest, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm := final.(Model)
	return fm.suggestion, fm.err
}
