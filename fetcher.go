package harvest

import "context"

// Fetcher retrieves the raw HTML of a page.
type Fetcher interface {
	// Fetch performs a single attempt. Transient failures (timeouts,
	// connection errors, 5xx) carry ENETWORK; everything else that prevents
	// a usable body carries EFETCH.
	Fetch(ctx context.Context, url string) (html string, err error)
}
