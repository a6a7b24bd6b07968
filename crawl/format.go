package crawl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/harvest"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatFailureCounts summarizes failures by error code, e.g.
// "dead: 2, invalid: 1". Codes are listed alphabetically.
func FormatFailureCounts(failures []harvest.Failure) string {
	if len(failures) == 0 {
		return ""
	}

	counts := make(map[string]int)
	for _, f := range failures {
		counts[f.Code]++
	}

	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = fmt.Sprintf("%s: %d", code, counts[code])
	}
	return strings.Join(parts, ", ")
}
