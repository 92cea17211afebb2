// Package git provides access to git operations via shell commands.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/commitsuggest"
)

// Compile-time interface verification.
var (
	_ commitsuggest.RepoProber = (*Runner)(nil)
	_ commitsuggest.DiffSource = (*Runner)(nil)
)

// DefaultBin is the git executable looked up on PATH.
const DefaultBin = "git"

// Runner executes git commands via shell.
type Runner struct {
	bin string
}

// NewRunner creates a new git runner. An empty bin selects DefaultBin.
func NewRunner(bin string) *Runner {
	if strings.TrimSpace(bin) == "" {
		bin = DefaultBin
	}
	return &Runner{bin: bin}
}

// IsRepository reports whether path is inside a git work tree or git dir.
// A failing rev-parse means "not a repository"; only a launch failure is an error.
func (r *Runner) IsRepository(ctx context.Context, path string) (bool, error) {
	_, err := r.run(ctx, path, "rev-parse", "--git-dir")
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ChangedFiles returns the names of files with unstaged changes, relative to
// the repository root, in the order git reports them. Names are listed
// NUL-terminated so they are never C-quoted.
func (r *Runner) ChangedFiles(ctx context.Context, repoPath string) ([]string, error) {
	output, err := r.run(ctx, repoPath, "diff", "--name-only", "-z")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, name := range strings.Split(output, "\x00") {
		if name != "" {
			files = append(files, name)
		}
	}
	return files, nil
}

// FileDiff returns the unstaged diff of a single file. The file name is
// resolved from the repository root, matching ChangedFiles output even when
// repoPath is a subdirectory, and is matched literally rather than as a glob.
func (r *Runner) FileDiff(ctx context.Context, repoPath, file string) (string, error) {
	return r.run(ctx, repoPath, "diff", "--", ":(top,literal)"+file)
}

// run executes git in dir and returns its standard output. The process is
// always waited on, so no handle outlives the call.
func (r *Runner) run(ctx context.Context, dir string, args ...string) (string, error) {
	full := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, r.bin, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExitError{
				Command: subcommand(args),
				Code:    exitErr.ExitCode(),
				Stderr:  strings.TrimSpace(stderr.String()),
			}
		}
		return "", fmt.Errorf("%w: %s: %w", commitsuggest.ErrLaunch, r.bin, err)
	}

	if !utf8.Valid(stdout.Bytes()) {
		return "", fmt.Errorf("git %s failed: %w", subcommand(args), commitsuggest.ErrUndecodable)
	}
	return stdout.String(), nil
}

// ExitError reports a git command that ran but exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("git %s failed: exit status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("git %s failed: %s", e.Command, e.Stderr)
}

// subcommand returns the git subcommand name for error messages, skipping
// leading -c options.
func subcommand(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}
