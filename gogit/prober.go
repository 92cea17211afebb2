// Package gogit implements repository probing in-process using go-git.
package gogit

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/commitsuggest"
	"github.com/go-git/go-git/v5"
)

// Compile-time interface verification.
var _ commitsuggest.RepoProber = (*Prober)(nil)

// Prober detects repositories by opening them with go-git, walking up from
// the given path until a .git directory is found.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// IsRepository reports whether path is inside a git repository.
func (p *Prober) IsRepository(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open git repository: %w", err)
	}
	return true, nil
}
