package mock

import (
	"context"

	"github.com/fwojciec/commitsuggest"
)

// Compile-time interface verification.
var (
	_ commitsuggest.RepoProber = (*RepoProber)(nil)
	_ commitsuggest.DiffSource = (*DiffSource)(nil)
)

// RepoProber is a mock implementation of commitsuggest.RepoProber.
type RepoProber struct {
	IsRepositoryFn func(ctx context.Context, path string) (bool, error)
}

func (p *RepoProber) IsRepository(ctx context.Context, path string) (bool, error) {
	return p.IsRepositoryFn(ctx, path)
}

// DiffSource is a mock implementation of commitsuggest.DiffSource.
type DiffSource struct {
	ChangedFilesFn func(ctx context.Context, repoPath string) ([]string, error)
	FileDiffFn     func(ctx context.Context, repoPath, file string) (string, error)
}

func (s *DiffSource) ChangedFiles(ctx context.Context, repoPath string) ([]string, error) {
	return s.ChangedFilesFn(ctx, repoPath)
}

func (s *DiffSource) FileDiff(ctx context.Context, repoPath, file string) (string, error) {
	return s.FileDiffFn(ctx, repoPath, file)
}
