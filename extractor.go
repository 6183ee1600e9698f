package texdex

import "iter"

// Candidate is a possible record extracted from one item node.
// An empty Title or URL means the corresponding rule found nothing.
// Err is set when applying the rules to the node failed outright.
type Candidate struct {
	Title string
	URL   string
	Err   error
}

// Extractor turns a fetched listing page into candidate records.
type Extractor interface {
	// Extract parses html and returns the candidates located by the source's
	// rules, in document order. The sequence is finite and may be ranged over
	// more than once with the same result. A returned error means the page or
	// the source's selectors could not be used at all.
	Extract(html string, src *Source) (iter.Seq[Candidate], error)
}
