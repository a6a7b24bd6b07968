// Package goquery implements harvest.Extractor using goquery's CSS selectors
// over the golang.org/x/net/html parse tree.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// ContentSelector matches every element the extractor collects. goquery
// returns matches in document order regardless of selector order.
const ContentSelector = "h1, h2, h3, p"

// Ensure Extractor implements harvest.Extractor at compile time.
var _ harvest.Extractor = (*Extractor)(nil)

// Extractor collects h1-h3 headings and paragraphs from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns headings and paragraphs in document order with their
// text trimmed. Empty elements are kept so the row count matches the
// number of <p> tags.
func (e *Extractor) Extract(html string) ([]harvest.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, harvest.Errorf(harvest.EPARSE, "failed to parse HTML: %v", err)
	}

	var fragments []harvest.Fragment
	doc.Find(ContentSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		kind := harvest.FragmentHeading
		if goquery.NodeName(sel) == "p" {
			kind = harvest.FragmentParagraph
		}
		fragments = append(fragments, harvest.Fragment{Kind: kind, Text: text})
	})

	return fragments, nil
}
