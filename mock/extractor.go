package mock

import (
	"iter"

	"github.com/fwojciec/texdex"
)

var _ texdex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of texdex.Extractor.
type Extractor struct {
	ExtractFn func(html string, src *texdex.Source) (iter.Seq[texdex.Candidate], error)
}

func (e *Extractor) Extract(html string, src *texdex.Source) (iter.Seq[texdex.Candidate], error) {
	return e.ExtractFn(html, src)
}
