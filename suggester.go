package commitsuggest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Suggester runs the suggestion pipeline: probe the path, collect diffs,
// build the prompt and ask the generator for a suggestion.
type Suggester struct {
	Prober    RepoProber
	Diffs     DiffSource
	Generator Generator
	Stats     StatParser        // Optional; nil disables per-file statistics
	Policy    DiffFailurePolicy // Per-file diff failure handling
	Logger    *slog.Logger      // Optional; nil discards log output
	NewID     func() string     // Optional; defaults to uuid.NewString

	// RequireChanges makes Suggest fail with ErrNoChanges instead of
	// prompting the model with an empty aggregate.
	RequireChanges bool
}

// Suggest produces a commit message suggestion for the repository at path.
// A path outside version control yields a Suggestion with NotRepository set
// and a nil error.
func (s *Suggester) Suggest(ctx context.Context, path string) (*Suggestion, error) {
	id := s.newID()
	log := s.logger().With("request_id", id, "path", path)
	start := time.Now()

	ok, err := s.Prober.IsRepository(ctx, path)
	if err != nil {
		log.Error("probe failed", "error", err)
		return nil, err
	}
	if !ok {
		log.Info("not a repository")
		return &Suggestion{
			RequestID:     id,
			Path:          path,
			Text:          NotRepositoryMessage,
			NotRepository: true,
		}, nil
	}
	log.Debug("found repository")

	agg, err := Collect(ctx, s.Diffs, path, s.Policy)
	if err != nil {
		log.Error("aggregation failed", "error", err)
		return nil, err
	}
	if agg.Truncated {
		log.Warn("aggregation stopped early", "failed_file", agg.FailedFile, "files", len(agg.Entries))
	}
	if s.RequireChanges && len(agg.Entries) == 0 && !agg.Truncated {
		log.Info("no changes")
		return nil, ErrNoChanges
	}
	if len(agg.Omitted) > 0 {
		log.Warn("diffs omitted", "omitted", agg.Omitted)
	}

	prompt := BuildPrompt(agg.Text())
	log.Debug("prompt built", "files", len(agg.Entries), "bytes", len(prompt))

	text, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		log.Error("inference failed", "error", err)
		return nil, err
	}

	log.Info("suggestion ready", "files", len(agg.Entries), "duration", time.Since(start))
	return &Suggestion{
		RequestID:  id,
		Path:       path,
		Text:       text,
		Diff:       agg.Text(),
		Files:      agg.Files(),
		Omitted:    agg.Omitted,
		Truncated:  agg.Truncated,
		FailedFile: agg.FailedFile,
		Stats:      s.stats(agg, log),
	}, nil
}

// SuggestText returns only the suggestion text for path.
func (s *Suggester) SuggestText(ctx context.Context, path string) (string, error) {
	sg, err := s.Suggest(ctx, path)
	if err != nil {
		return "", err
	}
	return sg.Text, nil
}

func (s *Suggester) stats(agg *Aggregate, log *slog.Logger) []FileStat {
	if s.Stats == nil {
		return nil
	}
	var stats []FileStat
	for _, e := range agg.Entries {
		if e.Err != nil {
			continue
		}
		st, err := s.Stats.Stats(e.Diff)
		if err != nil {
			log.Debug("cannot parse diff stats", "file", e.Path, "error", err)
			continue
		}
		st.Path = e.Path
		stats = append(stats, st)
	}
	return stats
}

func (s *Suggester) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Suggester) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}
