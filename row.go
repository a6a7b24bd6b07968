package harvest

import "context"

// Row is one url/title/paragraph record of the output table.
type Row struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Paragraph string `json:"paragraph"`
}

// RowHeader is the column header of the output table.
var RowHeader = []string{"url", "title", "paragraph"}

// Record returns the row's fields in RowHeader order.
func (r *Row) Record() []string {
	return []string{r.URL, r.Title, r.Paragraph}
}

// RowStore persists rows with atomic semantics.
// Save writes to a pending location; Commit makes the rows visible;
// Abort discards pending rows.
type RowStore interface {
	Save(ctx context.Context, row *Row) error
	Commit() error
	Abort() error
}
