package mock

import "github.com/fwojciec/harvest"

var _ harvest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of harvest.Extractor.
type Extractor struct {
	ExtractFn func(html string) ([]harvest.Fragment, error)
}

func (e *Extractor) Extract(html string) ([]harvest.Fragment, error) {
	return e.ExtractFn(html)
}
