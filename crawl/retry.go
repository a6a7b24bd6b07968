package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fwojciec/harvest"
)

// Retry defaults: three attempts in total, backing off from 500ms.
const (
	DefaultMaxAttempts     = 3
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 5 * time.Second
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryNotifyFunc is called before each retry with the attempt number about
// to run, the error that triggered it and the delay before it starts.
type RetryNotifyFunc func(attempt int, err error, delay time.Duration)

// RetryConfig controls FetchWithRetry.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     DefaultMaxAttempts,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
	}
}

func (c RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.InitialInterval > 0 {
		b.InitialInterval = c.InitialInterval
	}
	if c.MaxInterval > 0 {
		b.MaxInterval = c.MaxInterval
	}
	b.MaxElapsedTime = 0

	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// FetchWithRetry calls fetch until it succeeds, returns an error that is not
// retryable (see harvest.IsRetryable), or cfg.MaxAttempts is reached.
// Exhausted retries return the last ENETWORK error. Cancelling ctx stops
// retrying and returns ENETWORK.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, cfg RetryConfig, notify RetryNotifyFunc) (string, error) {
	var html string
	attempt := 1

	op := func() error {
		body, err := fetch(ctx, url)
		if err == nil {
			html = body
			return nil
		}
		if !harvest.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	onRetry := func(err error, delay time.Duration) {
		attempt++
		if notify != nil {
			notify(attempt, err, delay)
		}
	}

	err := backoff.RetryNotify(op, cfg.backOff(ctx), onRetry)
	if err == nil {
		return html, nil
	}
	if harvest.ErrorCode(err) != harvest.EINTERNAL {
		return "", err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", harvest.Errorf(harvest.ENETWORK, "%v", err)
	}
	return "", harvest.Errorf(harvest.EFETCH, "%v", err)
}
