// Package http provides net/http implementations of harvest.LivenessChecker
// and harvest.Fetcher. Both present themselves as a desktop browser and can
// share a single connection pool.
package http

import (
	"net/http"
	"time"
)

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 5 << 20

// Browser-like request headers. Some sites reject the Go default client.
const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	DefaultAcceptLanguage = "en-US,en;q=0.9"
)

// NewTransport returns a transport sized for a batch of concurrent requests.
// Pass it to both NewChecker and NewFetcher via WithTransport so probe and
// fetch reuse connections.
func NewTransport(maxConnsPerHost int) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if maxConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = maxConnsPerHost
	}
	return t
}

type options struct {
	timeout     time.Duration
	transport   http.RoundTripper
	maxBodySize int64
	userAgent   string
}

// Option configures a Checker or Fetcher.
type Option func(*options)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithTransport sets the round tripper used for requests.
// Defaults to http.DefaultTransport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
// Defaults to DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		o.maxBodySize = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

func newOptions(timeout time.Duration, opts []Option) options {
	o := options{
		timeout:     timeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) client() *http.Client {
	return &http.Client{
		Timeout:   o.timeout,
		Transport: o.transport,
	}
}

func (o options) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", o.userAgent)
	req.Header.Set("Accept", DefaultAccept)
	req.Header.Set("Accept-Language", DefaultAcceptLanguage)
}
