package harvest

// FragmentKind tags an extracted element.
type FragmentKind int

// Fragment kinds.
const (
	FragmentHeading FragmentKind = iota
	FragmentParagraph
)

// Fragment is a heading or paragraph found in a document, before titles
// are attributed to paragraphs.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Extractor parses HTML into headings and paragraphs in document order.
type Extractor interface {
	// Extract returns the fragments found in html.
	// Returns EPARSE if the document cannot be interpreted.
	Extract(html string) ([]Fragment, error)
}

// PairFragments attributes every paragraph to the nearest preceding heading
// of any level and returns one row per paragraph. Paragraphs before the
// first heading get an empty title; headings without paragraphs produce
// no rows.
func PairFragments(url string, fragments []Fragment) []Row {
	var rows []Row
	var title string
	for _, f := range fragments {
		switch f.Kind {
		case FragmentHeading:
			title = f.Text
		case FragmentParagraph:
			rows = append(rows, Row{
				URL:       url,
				Title:     title,
				Paragraph: f.Text,
			})
		}
	}
	return rows
}
