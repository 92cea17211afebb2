package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/commitsuggest"
	"github.com/fwojciec/commitsuggest/bubbletea"
	"github.com/fwojciec/commitsuggest/chroma"
	"github.com/fwojciec/commitsuggest/clipboard"
	"github.com/fwojciec/commitsuggest/config"
	"github.com/fwojciec/commitsuggest/gemini"
	"github.com/fwojciec/commitsuggest/git"
	"github.com/fwojciec/commitsuggest/gitdiff"
	"github.com/fwojciec/commitsuggest/gogit"
	"github.com/fwojciec/commitsuggest/lipgloss"
	"github.com/fwojciec/commitsuggest/logging"
	"github.com/fwojciec/commitsuggest/markup"
	"github.com/fwojciec/commitsuggest/mcp"
	"github.com/fwojciec/commitsuggest/notify"
	"github.com/fwojciec/commitsuggest/ollama"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// flags holds the command-line options that are not configuration keys.
type flags struct {
	configPath     string
	showDiff       bool
	copy           bool
	plain          bool
	requireChanges bool
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "commitsuggest [path...]",
		Short: "Suggest commit messages for uncommitted changes",
		Long: `commitsuggest collects the unstaged diff of each changed file in a git
repository and asks a local language model for commit message suggestions.

With a single path on a terminal the suggestion is shown in an interactive
viewer. Multiple paths are processed concurrently and printed in order.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			interactive := !f.plain && len(args) <= 1 && isTerminal(os.Stdout)
			return runSuggest(cmd.Context(), cfg, f, args, interactive, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/commitsuggest/config.toml)")
	pf.BoolVar(&f.requireChanges, "require-changes", false, "fail instead of asking the model when nothing changed")
	config.RegisterFlags(pf)

	fs := root.Flags()
	fs.BoolVarP(&f.showDiff, "show-diff", "d", false, "print the aggregated diff before the suggestion")
	fs.BoolVar(&f.copy, "copy", false, "copy the suggestion to the clipboard")
	fs.BoolVar(&f.plain, "plain", false, "print instead of opening the interactive viewer")

	root.AddCommand(newMCPCommand(&f))
	return root
}

func newMCPCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the get_commit_suggestion tool over MCP stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout. The server
provides the get_commit_suggestion tool, which takes a repository path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
			if err != nil {
				return err
			}
			suggester, closeFn, err := newSuggester(cmd.Context(), cfg, f.requireChanges, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			server := mcp.NewServer(suggester.Suggest, Version, logger)
			logger.Info("mcp server started")
			return server.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runSuggest(ctx context.Context, cfg *config.Config, f flags, paths []string, interactive bool, stdout, stderr io.Writer) error {
	logger := logging.Nop()
	if !interactive {
		var err error
		logger, err = logging.New(stderr, cfg.Log.Format, cfg.Log.Level)
		if err != nil {
			return err
		}
	}

	suggester, closeFn, err := newSuggester(ctx, cfg, f.requireChanges, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	theme := lipgloss.ThemeByName(cfg.Output.Theme)
	app := &App{
		Suggest:  suggester.Suggest,
		Stdout:   stdout,
		Stderr:   stderr,
		Workers:  cfg.Workers,
		ShowDiff: f.showDiff,
	}
	if interactive {
		app.Viewer = bubbletea.NewViewer(
			bubbletea.WithTheme(theme),
			bubbletea.WithClipboard(clipboard.NewSystem()),
		)
	}
	if cfg.Output.Highlight && isTerminal(os.Stdout) {
		h, err := chroma.NewHighlighter(chroma.StyleFromStyles(theme.Styles()), nil)
		if err != nil {
			return err
		}
		app.Highlighter = h
	}
	if cfg.Output.Format == config.FormatHTML {
		app.Renderer = markup.NewHTML()
	}
	if f.copy {
		app.Clipboard = clipboard.NewSystem()
	}
	if cfg.Notifications.Enabled {
		app.Notifier = notify.New(true)
	}

	return app.Run(ctx, paths)
}

// newSuggester wires the pipeline from configuration. The returned function
// releases backend resources.
func newSuggester(ctx context.Context, cfg *config.Config, requireChanges bool, logger *slog.Logger) (*commitsuggest.Suggester, func() error, error) {
	runner := git.NewRunner(cfg.Git.Bin)
	s := &commitsuggest.Suggester{
		Prober:         runner,
		Diffs:          runner,
		Stats:          gitdiff.NewParser(),
		Policy:         cfg.Policy(),
		Logger:         logger,
		RequireChanges: requireChanges,
	}
	if cfg.Git.Prober == config.ProberGoGit {
		s.Prober = gogit.NewProber()
	}

	closeFn := func() error { return nil }
	switch cfg.Inference.Backend {
	case config.BackendGemini:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, nil, errors.New("GEMINI_API_KEY environment variable required")
		}
		client, err := gemini.NewClient(ctx, apiKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		closeFn = client.Close
		s.Generator = gemini.NewGenerator(client, cfg.Inference.Model, gemini.WithTimeout(cfg.Inference.Timeout))
	default:
		s.Generator = ollama.NewRunner(
			ollama.WithBin(cfg.Inference.Bin),
			ollama.WithModel(cfg.Inference.Model),
			ollama.WithTimeout(cfg.Inference.Timeout),
		)
	}
	return s, closeFn, nil
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
