package mock

import (
	"context"

	"github.com/fwojciec/commitsuggest"
)

// Compile-time interface verification.
var _ commitsuggest.Generator = (*Generator)(nil)

// Generator is a mock implementation of commitsuggest.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateFn(ctx, prompt)
}
