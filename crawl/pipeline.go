// Package crawl drives URLs through the harvest pipeline: validation,
// liveness probe, fetch with retry, and extraction, under a global
// concurrency limit.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/harvest"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs traversing the pipeline at once.
const DefaultConcurrency = 10

// Pipeline coordinates the per-URL stages and collects their outcomes.
type Pipeline struct {
	Checker     harvest.LivenessChecker
	Fetcher     harvest.Fetcher
	Extractor   harvest.Extractor
	Concurrency int

	// Retry configures the fetch stage. The zero value means
	// DefaultRetryConfig.
	Retry RetryConfig

	// Events receives stage transitions when Verbose is set.
	Verbose bool
	Events  harvest.EventFunc
}

// taskResult holds the outcome of processing a single URL.
type taskResult struct {
	task    harvest.Task
	rows    []harvest.Row
	failure *harvest.Failure
	err     error
}

// Run processes urls and returns rows in input order together with one
// failure per rejected URL. The progress callback, if provided, is called
// once per URL from a single goroutine as URLs finish.
//
// Per-URL errors never abort the batch. Run only fails when urls is empty.
func (p *Pipeline) Run(ctx context.Context, urls []string, progress harvest.ProgressFunc) (*harvest.Outcome, error) {
	if len(urls) == 0 {
		return nil, harvest.Errorf(harvest.EINVALID, "no URLs provided")
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Channel for collecting results
	resultCh := make(chan taskResult, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			task := harvest.Task{URL: url, Index: i}
			g.Go(func() error {
				resultCh <- p.process(gctx, task)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]taskResult, len(urls))
	completed := 0
	for result := range resultCh {
		completed++
		results[result.task.Index] = result

		if progress != nil {
			progress(harvest.Progress{
				URL:       result.task.URL,
				Completed: completed,
				Total:     len(urls),
				Error:     result.err,
			})
		}
	}

	outcome := &harvest.Outcome{}
	for _, result := range results {
		if result.failure != nil {
			outcome.Failures = append(outcome.Failures, *result.failure)
			continue
		}
		outcome.Rows = append(outcome.Rows, result.rows...)
	}

	return outcome, nil
}

// process takes one URL through every stage, stopping at the first
// rejection.
func (p *Pipeline) process(ctx context.Context, task harvest.Task) taskResult {
	result := taskResult{task: task}
	reject := func(stage harvest.Stage, err error) taskResult {
		f := harvest.NewFailure(task, stage, err)
		result.failure = &f
		result.err = err
		p.emit(harvest.Event{Task: task, Stage: stage, Status: harvest.EventRejected, Err: err})
		return result
	}

	// Validate
	if !harvest.ValidateURL(task.URL) {
		return reject(harvest.StageValidate, harvest.LivenessResult{
			Status: harvest.InvalidFormat,
			Detail: fmt.Sprintf("invalid URL format: %q", task.URL),
		}.Err())
	}
	p.emit(harvest.Event{Task: task, Stage: harvest.StageValidate, Status: harvest.EventPassed})

	if err := ctx.Err(); err != nil {
		return reject(harvest.StageProbe, harvest.Errorf(harvest.ENETWORK, "canceled before probe: %v", err))
	}

	// Probe
	p.emit(harvest.Event{Task: task, Stage: harvest.StageProbe, Status: harvest.EventStarted})
	if err := p.Checker.Check(ctx, task.URL).Err(); err != nil {
		return reject(harvest.StageProbe, err)
	}
	p.emit(harvest.Event{Task: task, Stage: harvest.StageProbe, Status: harvest.EventPassed})

	// Fetch with retry
	p.emit(harvest.Event{Task: task, Stage: harvest.StageFetch, Status: harvest.EventStarted})
	notify := func(attempt int, err error, _ time.Duration) {
		p.emit(harvest.Event{Task: task, Stage: harvest.StageFetch, Status: harvest.EventRetry, Err: err})
	}
	html, err := FetchWithRetry(ctx, task.URL, p.Fetcher.Fetch, p.retryConfig(), notify)
	if err != nil {
		return reject(harvest.StageFetch, err)
	}
	p.emit(harvest.Event{Task: task, Stage: harvest.StageFetch, Status: harvest.EventPassed})

	// Extract
	fragments, err := p.Extractor.Extract(html)
	if err != nil {
		if harvest.ErrorCode(err) == harvest.EINTERNAL {
			err = harvest.Errorf(harvest.EPARSE, "%v", err)
		}
		return reject(harvest.StageExtract, err)
	}
	if len(fragments) == 0 {
		p.emit(harvest.Event{Task: task, Stage: harvest.StageExtract, Status: harvest.EventEmpty})
	}

	result.rows = harvest.PairFragments(task.URL, fragments)
	p.emit(harvest.Event{Task: task, Stage: harvest.StageDone, Status: harvest.EventPassed, Rows: len(result.rows)})

	return result
}

func (p *Pipeline) retryConfig() RetryConfig {
	if p.Retry.MaxAttempts == 0 {
		return DefaultRetryConfig()
	}
	return p.Retry
}

func (p *Pipeline) emit(e harvest.Event) {
	if p.Verbose && p.Events != nil {
		p.Events(e)
	}
}
