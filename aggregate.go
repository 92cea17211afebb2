package commitsuggest

import (
	"context"
	"fmt"
	"strings"
)

// DiffFailurePolicy controls what aggregation does when a single file's diff
// cannot be collected.
type DiffFailurePolicy int

// Diff failure policies.
const (
	// PolicyStop ends aggregation at the failing file and keeps the entries
	// gathered so far. No error is reported.
	PolicyStop DiffFailurePolicy = iota
	// PolicyOmit records an omission marker for the failing file and continues.
	PolicyOmit
	// PolicyFail aborts the request with ErrFileDiff.
	PolicyFail
)

// String returns the configuration name of the policy.
func (p DiffFailurePolicy) String() string {
	switch p {
	case PolicyStop:
		return "stop"
	case PolicyOmit:
		return "omit"
	case PolicyFail:
		return "fail"
	default:
		return fmt.Sprintf("DiffFailurePolicy(%d)", int(p))
	}
}

// ParseDiffFailurePolicy parses a policy name as used in configuration.
// An empty name selects PolicyStop.
func ParseDiffFailurePolicy(name string) (DiffFailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "stop":
		return PolicyStop, nil
	case "omit":
		return PolicyOmit, nil
	case "fail":
		return PolicyFail, nil
	default:
		return PolicyStop, fmt.Errorf("unknown diff failure policy %q (want stop, omit or fail)", name)
	}
}

// FileChange is one entry of an aggregate: a changed file and its diff.
type FileChange struct {
	Path string
	Diff string
	Err  error // Set when the diff was omitted under PolicyOmit
}

// String renders the entry as it appears in the aggregate text.
func (c FileChange) String() string {
	if c.Err != nil {
		return fmt.Sprintf("%s\n[diff unavailable: %v]\n", c.Path, c.Err)
	}
	return c.Path + "\n" + c.Diff + "\n"
}

// Aggregate holds the diffs collected for one request.
type Aggregate struct {
	Entries    []FileChange
	Omitted    []string
	Truncated  bool
	FailedFile string
}

// Text returns the concatenated entries. It is empty when nothing changed.
func (a *Aggregate) Text() string {
	var sb strings.Builder
	for _, e := range a.Entries {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Files returns the paths whose diffs are included in the aggregate.
func (a *Aggregate) Files() []string {
	files := make([]string, 0, len(a.Entries))
	for _, e := range a.Entries {
		if e.Err == nil {
			files = append(files, e.Path)
		}
	}
	return files
}

// Collect lists the changed files of the repository at repoPath and gathers
// their diffs one at a time, in listing order. A listing failure is always
// fatal; per-file failures are handled according to policy.
func Collect(ctx context.Context, src DiffSource, repoPath string, policy DiffFailurePolicy) (*Aggregate, error) {
	files, err := src.ChangedFiles(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListChanges, err)
	}

	agg := &Aggregate{Entries: make([]FileChange, 0, len(files))}
	for _, file := range files {
		diff, err := src.FileDiff(ctx, repoPath, file)
		if err == nil {
			agg.Entries = append(agg.Entries, FileChange{Path: file, Diff: diff})
			continue
		}
		// A cancelled request is never a per-file failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		switch policy {
		case PolicyOmit:
			agg.Entries = append(agg.Entries, FileChange{Path: file, Err: err})
			agg.Omitted = append(agg.Omitted, file)
		case PolicyFail:
			return nil, fmt.Errorf("%w %s: %w", ErrFileDiff, file, err)
		default:
			agg.Truncated = true
			agg.FailedFile = file
			return agg, nil
		}
	}
	return agg, nil
}
