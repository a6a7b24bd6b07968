package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/harvest"
)

// DefaultProbeTimeout is shorter than DefaultFetchTimeout so dead hosts are
// dropped before the expensive fetch.
const DefaultProbeTimeout = 10 * time.Second

// Ensure Checker implements harvest.LivenessChecker at compile time.
var _ harvest.LivenessChecker = (*Checker)(nil)

// Checker probes URLs with a single GET and classifies the response.
type Checker struct {
	client *http.Client
	opts   options
}

// NewChecker creates a Checker. Redirects are followed.
func NewChecker(opts ...Option) *Checker {
	o := newOptions(DefaultProbeTimeout, opts)
	return &Checker{client: o.client(), opts: o}
}

// Check classifies url as Alive, Dead or NotFound. A body containing
// harvest.NotFoundMarker is NotFound whatever the status code.
func (c *Checker) Check(ctx context.Context, url string) harvest.LivenessResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return harvest.LivenessResult{Status: harvest.Dead, Detail: err.Error()}
	}
	c.opts.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return harvest.LivenessResult{Status: harvest.Dead, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.maxBodySize))
	if err != nil {
		return harvest.LivenessResult{Status: harvest.Dead, Detail: fmt.Sprintf("read body: %v", err)}
	}

	if bytes.Contains(bytes.ToLower(body), []byte(harvest.NotFoundMarker)) {
		return harvest.LivenessResult{
			Status: harvest.NotFound,
			Detail: fmt.Sprintf("HTTP %d, body contains %q", resp.StatusCode, harvest.NotFoundMarker),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return harvest.LivenessResult{Status: harvest.Dead, Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	return harvest.LivenessResult{Status: harvest.Alive}
}
