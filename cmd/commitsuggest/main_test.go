package main_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/commitsuggest"
	"github.com/fwojciec/commitsuggest/bubbletea"
	main "github.com/fwojciec/commitsuggest/cmd/commitsuggest"
	"github.com/fwojciec/commitsuggest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewerFunc func(ctx context.Context, path string, suggest bubbletea.SuggestFunc) (*commitsuggest.Suggestion, error)

func (f viewerFunc) Run(ctx context.Context, path string, suggest bubbletea.SuggestFunc) (*commitsuggest.Suggestion, error) {
	return f(ctx, path, suggest)
}

func suggestText(text string) main.SuggestFunc {
	return func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		return &commitsuggest.Suggestion{Path: path, Text: text, Diff: "main.go\n+x\n", Files: []string{"main.go"}}, nil
	}
}

func newApp(suggest main.SuggestFunc) (*main.App, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &main.App{Suggest: suggest, Stdout: &stdout, Stderr: &stderr, Workers: 2}, &stdout, &stderr
}

func TestApp_Run_PrintsSuggestion(t *testing.T) {
	t.Parallel()

	var gotPath string
	app, stdout, _ := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		gotPath = path
		return &commitsuggest.Suggestion{Path: path, Text: "feat: add parser\n"}, nil
	})

	err := app.Run(context.Background(), []string{"/repo"})

	require.NoError(t, err)
	assert.Equal(t, "/repo", gotPath)
	assert.Equal(t, "feat: add parser\n", stdout.String())
}

func TestApp_Run_DefaultsToCurrentDirectory(t *testing.T) {
	t.Parallel()

	var gotPath string
	app, _, _ := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		gotPath = path
		return &commitsuggest.Suggestion{Path: path, Text: "ok"}, nil
	})

	require.NoError(t, app.Run(context.Background(), nil))
	assert.Equal(t, ".", gotPath)
}

func TestApp_Run_NotRepository(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		return &commitsuggest.Suggestion{Path: path, Text: commitsuggest.NotRepositoryMessage, NotRepository: true}, nil
	})
	app.Clipboard = &mock.Clipboard{
		CopyFn: func(content string) error {
			t.Fatal("not-a-repository text must not be copied")
			return nil
		},
	}
	app.Renderer = &mock.Renderer{
		RenderFn: func(text string) (string, error) {
			t.Fatal("not-a-repository text must not be rendered")
			return "", nil
		},
	}

	err := app.Run(context.Background(), []string{"/tmp"})

	require.NoError(t, err)
	assert.Equal(t, commitsuggest.NotRepositoryMessage+"\n", stdout.String())
}

func TestApp_Run_SingleFailureReturnsError(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		return nil, commitsuggest.ErrInference
	})

	err := app.Run(context.Background(), []string{"/repo"})

	require.ErrorIs(t, err, commitsuggest.ErrInference)
	assert.Empty(t, stdout.String())
}

func TestApp_Run_BatchKeepsArgumentOrder(t *testing.T) {
	t.Parallel()

	delays := map[string]time.Duration{"/a": 30 * time.Millisecond, "/b": 0, "/c": 10 * time.Millisecond}
	app, stdout, _ := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		time.Sleep(delays[path])
		return &commitsuggest.Suggestion{Path: path, Text: "suggestion for " + path}, nil
	})
	app.Workers = 3

	err := app.Run(context.Background(), []string{"/a", "/b", "/c"})

	require.NoError(t, err)
	want := "==> /a <==\nsuggestion for /a\n\n==> /b <==\nsuggestion for /b\n\n==> /c <==\nsuggestion for /c\n"
	assert.Equal(t, want, stdout.String())
}

func TestApp_Run_BatchReportsFailuresPerPath(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		if path == "/bad" {
			return nil, commitsuggest.ErrListChanges
		}
		return &commitsuggest.Suggestion{Path: path, Text: "ok " + path}, nil
	})

	err := app.Run(context.Background(), []string{"/good", "/bad"})

	require.Error(t, err)
	assert.ErrorIs(t, err, commitsuggest.ErrListChanges)
	assert.Contains(t, err.Error(), "/bad")
	assert.Contains(t, stdout.String(), "ok /good")
	assert.Contains(t, stdout.String(), "==> /bad <==\nerror: ")
}

func TestApp_Run_BatchRespectsWorkerLimit(t *testing.T) {
	t.Parallel()

	var current, peak atomic.Int32
	app, _, _ := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		current.Add(-1)
		return &commitsuggest.Suggestion{Path: path, Text: "ok"}, nil
	})
	app.Workers = 2

	err := app.Run(context.Background(), []string{"/1", "/2", "/3", "/4", "/5", "/6"})

	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestApp_Run_UsesViewerForSinglePath(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newApp(suggestText("feat: tui"))
	var viewed string
	app.Viewer = viewerFunc(func(ctx context.Context, path string, suggest bubbletea.SuggestFunc) (*commitsuggest.Suggestion, error) {
		s, err := suggest(ctx)
		require.NoError(t, err)
		viewed = s.Text
		return s, nil
	})

	err := app.Run(context.Background(), []string{"/repo"})

	require.NoError(t, err)
	assert.Equal(t, "feat: tui", viewed)
	assert.Empty(t, stdout.String(), "viewer owns the terminal")
}

func TestApp_Run_PrintsBatchEvenWithViewer(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newApp(suggestText("ok"))
	app.Viewer = viewerFunc(func(ctx context.Context, path string, suggest bubbletea.SuggestFunc) (*commitsuggest.Suggestion, error) {
		t.Fatal("viewer must not be used for multiple paths")
		return nil, nil
	})

	require.NoError(t, app.Run(context.Background(), []string{"/a", "/b"}))
	assert.Equal(t, 2, strings.Count(stdout.String(), "ok\n"))
}

func TestApp_Run_ShowDiff(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newApp(suggestText("feat: x"))
	app.ShowDiff = true
	app.Highlighter = &mock.Highlighter{
		HighlightFn: func(text string) (string, error) {
			return strings.ToUpper(text), nil
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"/repo"}))
	assert.Equal(t, "MAIN.GO\n+X\n\nfeat: x\n", stdout.String())
}

func TestApp_Run_ShowDiffFallsBackToPlainText(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newApp(suggestText("feat: x"))
	app.ShowDiff = true
	app.Highlighter = &mock.Highlighter{
		HighlightFn: func(text string) (string, error) {
			return "", errors.New("no lexer")
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"/repo"}))
	assert.Equal(t, "main.go\n+x\n\nfeat: x\n", stdout.String())
}

func TestApp_Run_RendersSuggestion(t *testing.T) {
	t.Parallel()

	app, stdout, _ := newApp(suggestText("- feat: x"))
	app.Renderer = &mock.Renderer{
		RenderFn: func(text string) (string, error) {
			return "<ul><li>feat: x</li></ul>\n", nil
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"/repo"}))
	assert.Equal(t, "<ul><li>feat: x</li></ul>\n", stdout.String())
}

func TestApp_Run_RenderError(t *testing.T) {
	t.Parallel()

	renderErr := errors.New("bad markup")
	app, _, _ := newApp(suggestText("x"))
	app.Renderer = &mock.Renderer{
		RenderFn: func(text string) (string, error) {
			return "", renderErr
		},
	}

	err := app.Run(context.Background(), []string{"/repo"})

	assert.ErrorIs(t, err, renderErr)
}

func TestApp_Run_CopiesSuggestion(t *testing.T) {
	t.Parallel()

	var copied string
	app, _, stderr := newApp(suggestText("feat: copy me"))
	app.Clipboard = &mock.Clipboard{
		CopyFn: func(content string) error {
			copied = content
			return nil
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"/repo"}))
	assert.Equal(t, "feat: copy me", copied)
	assert.Empty(t, stderr.String())
}

func TestApp_Run_CopyFailureIsWarning(t *testing.T) {
	t.Parallel()

	app, stdout, stderr := newApp(suggestText("feat: x"))
	app.Clipboard = &mock.Clipboard{
		CopyFn: func(content string) error {
			return errors.New("no xclip")
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"/repo"}))
	assert.Equal(t, "feat: x\n", stdout.String())
	assert.Contains(t, stderr.String(), "copy failed: no xclip")
}

func TestApp_Run_WarnsAboutPartialAggregation(t *testing.T) {
	t.Parallel()

	app, _, stderr := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		return &commitsuggest.Suggestion{
			Path:       path,
			Text:       "feat: x",
			Truncated:  true,
			FailedFile: "b.go",
			Omitted:    []string{"c.go"},
		}, nil
	})

	require.NoError(t, app.Run(context.Background(), []string{"/repo"}))
	assert.Contains(t, stderr.String(), "stopped at b.go")
	assert.Contains(t, stderr.String(), "diff unavailable for c.go")
}

func TestApp_Run_Notifies(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var notified []string
	app, _, _ := newApp(suggestText("ok"))
	app.Notifier = &mock.Notifier{
		NotifySuggestionFn: func(s *commitsuggest.Suggestion) error {
			mu.Lock()
			defer mu.Unlock()
			notified = append(notified, s.Path)
			return nil
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"/a", "/b"}))
	assert.ElementsMatch(t, []string{"/a", "/b"}, notified)
}

func TestApp_Run_NotificationFailureIsWarning(t *testing.T) {
	t.Parallel()

	app, stdout, stderr := newApp(suggestText("ok"))
	app.Notifier = &mock.Notifier{
		NotifySuggestionFn: func(s *commitsuggest.Suggestion) error {
			return errors.New("no daemon")
		},
	}

	require.NoError(t, app.Run(context.Background(), []string{"/repo"}))
	assert.Equal(t, "ok\n", stdout.String())
	assert.Contains(t, stderr.String(), "notification failed: no daemon")
}

func TestApp_Run_DoesNotNotifyFailures(t *testing.T) {
	t.Parallel()

	app, _, _ := newApp(func(ctx context.Context, path string) (*commitsuggest.Suggestion, error) {
		return nil, commitsuggest.ErrInference
	})
	app.Notifier = &mock.Notifier{
		NotifySuggestionFn: func(s *commitsuggest.Suggestion) error {
			t.Fatal("failures must not be announced")
			return nil
		},
	}

	assert.Error(t, app.Run(context.Background(), []string{"/repo"}))
}
