package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingChecker implements harvest.LivenessChecker.
var _ harvest.LivenessChecker = (*LoggingChecker)(nil)

// LoggingChecker wraps a LivenessChecker with logging.
type LoggingChecker struct {
	next   harvest.LivenessChecker
	logger *slog.Logger
}

// NewLoggingChecker creates a new LoggingChecker.
func NewLoggingChecker(next harvest.LivenessChecker, logger *slog.Logger) *LoggingChecker {
	return &LoggingChecker{next: next, logger: logger}
}

// Check delegates to the wrapped checker and logs the result.
func (c *LoggingChecker) Check(ctx context.Context, url string) (result harvest.LivenessResult) {
	defer func(begin time.Time) {
		c.logger.Info("liveness probe",
			"url", url,
			"status", result.Status.String(),
			"detail", result.Detail,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Check(ctx, url)
}
