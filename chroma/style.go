package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/commitsuggest"
)

// StyleFromStyles returns a function that maps diff token types to the
// color pairs of the given view styles.
func StyleFromStyles(s commitsuggest.Styles) StyleFunc {
	return func(tt chromalib.TokenType) commitsuggest.ColorPair {
		switch tt {
		case chromalib.GenericInserted:
			return s.Added
		case chromalib.GenericDeleted:
			return s.Deleted
		// diff --git, index and @@ hunk lines
		case chromalib.GenericHeading, chromalib.GenericSubheading:
			return s.Accent
		case chromalib.GenericStrong:
			return s.Warning
		default:
			return commitsuggest.ColorPair{}
		}
	}
}
