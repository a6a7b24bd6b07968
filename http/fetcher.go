package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/fwojciec/harvest"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for a full page fetch.
const DefaultFetchTimeout = 15 * time.Second

// Ensure Fetcher implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content with a single HTTP GET. It does not
// execute JavaScript and does not retry; see crawl.FetchWithRetry.
type Fetcher struct {
	client *http.Client
	opts   options
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(DefaultFetchTimeout, opts)
	return &Fetcher{client: o.client(), opts: o}
}

// Fetch retrieves url and returns its body decoded to UTF-8 using the
// charset from the response headers or the document itself.
//
// Connection failures, timeouts and 5xx responses return ENETWORK. Other
// non-2xx responses, redirect loops, unsupported schemes and undecodable
// bodies return EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", harvest.Errorf(harvest.EFETCH, "build request: %v", err)
	}
	f.opts.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return "", harvest.Errorf(harvest.ENETWORK, "HTTP %d", resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", harvest.Errorf(harvest.EFETCH, "HTTP %d", resp.StatusCode)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, f.opts.maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", bodyError(err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", bodyError(err)
	}

	return string(body), nil
}

// transportError tags a failed request. Timeouts, cancellation and
// connection-level failures are transient. Redirect loops, unsupported
// schemes and other client-side refusals are not.
func transportError(err error) error {
	inner := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return harvest.Errorf(harvest.ENETWORK, "%v", err)
		}
		inner = urlErr.Err
	}

	var netErr net.Error
	switch {
	case errors.As(inner, &netErr),
		errors.Is(inner, context.DeadlineExceeded),
		errors.Is(inner, context.Canceled),
		errors.Is(inner, io.EOF),
		errors.Is(inner, io.ErrUnexpectedEOF),
		errors.Is(inner, syscall.ECONNRESET),
		errors.Is(inner, syscall.ECONNREFUSED):
		return harvest.Errorf(harvest.ENETWORK, "%v", err)
	}
	return harvest.Errorf(harvest.EFETCH, "%v", err)
}

// bodyError tags a failure while reading the body. A timeout mid-body is
// transient; anything else means the body is unusable.
func bodyError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return harvest.Errorf(harvest.ENETWORK, "read body: %v", err)
	}
	return harvest.Errorf(harvest.EFETCH, "read body: %v", err)
}
