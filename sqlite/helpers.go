package sqlite

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// HashParagraph computes the xxHash of a paragraph as a hex string.
// Identical paragraphs across pages and runs share a hash.
func HashParagraph(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
