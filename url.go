package harvest

import (
	"net/url"
	"regexp"
)

// Task is a single input URL together with its position in the batch.
type Task struct {
	URL   string
	Index int
}

// absoluteHTTPURL matches scheme://host[:port][path][?query][#fragment]
// with no whitespace anywhere.
var absoluteHTTPURL = regexp.MustCompile(`(?i)^https?://[^\s/?#]+([/?#]\S*)?$`)

// ValidateURL reports whether raw is an absolute http or https URL with a
// host. It performs no I/O.
func ValidateURL(raw string) bool {
	if !absoluteHTTPURL.MatchString(raw) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Hostname() != ""
}
