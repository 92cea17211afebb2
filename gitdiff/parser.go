// Package gitdiff implements diff statistics using bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/commitsuggest"
)

// Compile-time interface verification.
var _ commitsuggest.StatParser = (*Parser)(nil)

// Parser parses unified diff content using go-gitdiff.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Stats parses a single-file diff and counts its added and deleted lines.
// An empty diff yields a zero FileStat.
func (p *Parser) Stats(diff string) (commitsuggest.FileStat, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(diff))
	if err != nil {
		return commitsuggest.FileStat{}, err
	}

	switch len(files) {
	case 0:
		return commitsuggest.FileStat{}, nil
	case 1:
		return convertFile(files[0]), nil
	default:
		return commitsuggest.FileStat{}, fmt.Errorf("gitdiff: expected one file, got %d", len(files))
	}
}

func convertFile(f *gitdiff.File) commitsuggest.FileStat {
	st := commitsuggest.FileStat{
		Path:   f.NewName,
		Binary: f.IsBinary,
	}
	if f.IsDelete {
		st.Path = f.OldName
	}

	for _, frag := range f.TextFragments {
		st.Added += int(frag.LinesAdded)
		st.Deleted += int(frag.LinesDeleted)
	}
	return st
}
