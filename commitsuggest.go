// Package commitsuggest provides domain types for turning the working-tree
// changes of a git repository into a commit message suggestion.
package commitsuggest

import "context"

// NotRepositoryMessage is the suggestion text returned for paths that are not
// inside a repository.
const NotRepositoryMessage = "Not a git repo"

// RepoProber determines whether a path belongs to a version-controlled repository.
type RepoProber interface {
	// IsRepository returns false and a nil error when the query ran and
	// reported that path is not a repository. An error means the query
	// itself could not be run.
	IsRepository(ctx context.Context, path string) (bool, error)
}

// DiffSource provides access to uncommitted changes in a repository.
type DiffSource interface {
	// ChangedFiles returns the paths of modified files, relative to the
	// repository root, in the order reported by the version-control tool.
	ChangedFiles(ctx context.Context, repoPath string) ([]string, error)
	// FileDiff returns the unified diff for a single changed file.
	FileDiff(ctx context.Context, repoPath, file string) (string, error)
}

// Generator produces text from a prompt using a language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StatParser extracts line statistics from a single-file diff.
type StatParser interface {
	Stats(diff string) (FileStat, error)
}

// FileStat summarizes the changes to one file.
type FileStat struct {
	Path    string
	Added   int
	Deleted int
	Binary  bool
}

// Suggestion is the result of a single suggestion request.
type Suggestion struct {
	RequestID     string
	Path          string     // Repository path as given by the caller
	Text          string     // Model output, or NotRepositoryMessage
	NotRepository bool       // True when Path is not under version control
	Diff          string     // Aggregated diff text sent to the model
	Files         []string   // Files whose diffs were sent to the model
	Omitted       []string   // Files whose diffs could not be collected
	Truncated     bool       // Aggregation stopped early at FailedFile
	FailedFile    string     // File whose diff query stopped aggregation
	Stats         []FileStat // Per-file line counts, for display only
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// Notifier announces a finished suggestion outside the terminal.
type Notifier interface {
	NotifySuggestion(s *Suggestion) error
}

// Renderer converts suggestion text into a presentation format.
type Renderer interface {
	Render(text string) (string, error)
}

// Highlighter applies terminal styling to aggregated diff text.
type Highlighter interface {
	Highlight(text string) (string, error)
}
