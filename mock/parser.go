// Package mock provides test doubles for commitsuggest interfaces.
package mock

import "github.com/fwojciec/commitsuggest"

// Compile-time interface verification.
var _ commitsuggest.StatParser = (*StatParser)(nil)

// StatParser is a mock implementation of commitsuggest.StatParser.
type StatParser struct {
	StatsFn func(diff string) (commitsuggest.FileStat, error)
}

func (p *StatParser) Stats(diff string) (commitsuggest.FileStat, error) {
	return p.StatsFn(diff)
}
