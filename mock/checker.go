package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.LivenessChecker = (*LivenessChecker)(nil)

// LivenessChecker is a mock implementation of harvest.LivenessChecker.
type LivenessChecker struct {
	CheckFn func(ctx context.Context, url string) harvest.LivenessResult
}

func (c *LivenessChecker) Check(ctx context.Context, url string) harvest.LivenessResult {
	return c.CheckFn(ctx, url)
}
