// Package ollama implements commit suggestion generation by invoking a local
// ollama process.
package ollama

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/commitsuggest"
)

// Compile-time interface verification.
var _ commitsuggest.Generator = (*Runner)(nil)

// Defaults for the local inference process.
const (
	DefaultBin   = "ollama"
	DefaultModel = "llama2"
)

// Runner runs "<bin> run <model> <prompt>" and returns its standard output.
type Runner struct {
	bin     string
	model   string
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithBin sets the inference executable.
func WithBin(bin string) Option {
	return func(r *Runner) {
		if strings.TrimSpace(bin) != "" {
			r.bin = bin
		}
	}
}

// WithModel sets the model identifier passed to the executable.
func WithModel(model string) Option {
	return func(r *Runner) {
		if strings.TrimSpace(model) != "" {
			r.model = model
		}
	}
}

// WithTimeout bounds each invocation. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{bin: DefaultBin, model: DefaultModel}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Model returns the model identifier used for inference.
func (r *Runner) Model() string {
	return r.model
}

// Generate runs the model with prompt as a single argument and blocks until
// the process exits or ctx is done.
func (r *Runner) Generate(ctx context.Context, prompt string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.bin, "run", r.model, prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s run %s: %w", commitsuggest.ErrInference, r.bin, r.model, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.Error()
			}
			return "", fmt.Errorf("%w: %s run %s: %s", commitsuggest.ErrInference, r.bin, r.model, msg)
		}
		if errors.Is(err, syscall.E2BIG) {
			return "", fmt.Errorf("%w: %s: prompt of %d bytes exceeds the system argument size limit: %w", commitsuggest.ErrLaunch, r.bin, len(prompt), err)
		}
		return "", fmt.Errorf("%w: %s: %w", commitsuggest.ErrLaunch, r.bin, err)
	}

	if !utf8.Valid(stdout.Bytes()) {
		return "", fmt.Errorf("%s run %s: %w", r.bin, r.model, commitsuggest.ErrUndecodable)
	}
	return stdout.String(), nil
}
