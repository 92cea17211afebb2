package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fwojciec/commitsuggest"
	"github.com/fwojciec/commitsuggest/bubbletea"
	"golang.org/x/sync/errgroup"
)

// SuggestFunc produces a suggestion for one repository path.
type SuggestFunc func(ctx context.Context, path string) (*commitsuggest.Suggestion, error)

// Viewer shows a suggestion interactively.
type Viewer interface {
	Run(ctx context.Context, path string, suggest bubbletea.SuggestFunc) (*commitsuggest.Suggestion, error)
}

// App encapsulates the application logic for testing.
type App struct {
	Suggest SuggestFunc
	Stdout  io.Writer
	Stderr  io.Writer

	// Viewer, when set, displays a single path interactively. Multiple
	// paths are always printed.
	Viewer  Viewer
	Workers int

	ShowDiff    bool
	Highlighter commitsuggest.Highlighter // Optional; colors the diff shown with ShowDiff
	Renderer    commitsuggest.Renderer    // Optional; converts printed suggestions
	Clipboard   commitsuggest.Clipboard   // Optional; receives printed suggestions
	Notifier    commitsuggest.Notifier    // Optional

	mu sync.Mutex // Serializes warnings written by concurrent requests
}

type result struct {
	suggestion *commitsuggest.Suggestion
	err        error
}

// Run requests suggestions for paths, or the current directory when paths is empty.
func (a *App) Run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	suggest := a.notifying()

	if a.Viewer != nil && len(paths) == 1 {
		path := paths[0]
		_, err := a.Viewer.Run(ctx, path, func(ctx context.Context) (*commitsuggest.Suggestion, error) {
			return suggest(ctx, path)
		})
		return err
	}

	results := make([]result, len(paths))
	var g errgroup.Group
	g.SetLimit(max(a.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			s, err := suggest(ctx, path)
			results[i] = result{suggestion: s, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if len(paths) == 1 {
		if results[0].err != nil {
			return results[0].err
		}
		return a.print(results[0].suggestion)
	}

	var errs []error
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(a.Stdout)
		}
		fmt.Fprintf(a.Stdout, "==> %s <==\n", paths[i])
		if r.err == nil {
			r.err = a.print(r.suggestion)
		}
		if r.err != nil {
			fmt.Fprintf(a.Stdout, "error: %v\n", r.err)
			errs = append(errs, fmt.Errorf("%s: %w", paths[i], r.err))
		}
	}
	return errors.Join(errs...)
}

// notifying wraps Suggest so that finished suggestions are announced.
func (a *App) notifying() SuggestFunc {
	return func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		s, err := a.Suggest(ctx, path)
		if err != nil || a.Notifier == nil {
			return s, err
		}
		if nerr := a.Notifier.NotifySuggestion(s); nerr != nil {
			a.mu.Lock()
			fmt.Fprintf(a.Stderr, "warning: notification failed: %v\n", nerr)
			a.mu.Unlock()
		}
		return s, nil
	}
}

func (a *App) print(s *commitsuggest.Suggestion) error {
	if s.NotRepository {
		fmt.Fprintln(a.Stdout, s.Text)
		return nil
	}

	if a.ShowDiff && s.Diff != "" {
		diff := s.Diff
		if a.Highlighter != nil {
			if h, err := a.Highlighter.Highlight(diff); err == nil {
				diff = h
			}
		}
		fmt.Fprint(a.Stdout, diff)
		fmt.Fprintln(a.Stdout)
	}

	if s.Truncated {
		fmt.Fprintf(a.Stderr, "warning: %s: diff collection stopped at %s; later files were not sent\n", s.Path, s.FailedFile)
	}
	for _, f := range s.Omitted {
		fmt.Fprintf(a.Stderr, "warning: %s: diff unavailable for %s\n", s.Path, f)
	}

	text := s.Text
	if a.Renderer != nil {
		rendered, err := a.Renderer.Render(text)
		if err != nil {
			return err
		}
		text = rendered
	}
	fmt.Fprintln(a.Stdout, strings.TrimRight(text, "\n"))

	if a.Clipboard != nil {
		if err := a.Clipboard.Copy(s.Text); err != nil {
			fmt.Fprintf(a.Stderr, "warning: copy failed: %v\n", err)
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
