package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/harvest"
)

// EventLogger writes pipeline events to a logger. Rejections and empty
// pages are warnings, retries are info and everything else is debug.
type EventLogger struct {
	logger *slog.Logger
}

// NewEventLogger creates a new EventLogger.
func NewEventLogger(logger *slog.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// Log records e. It matches harvest.EventFunc and is safe for concurrent use.
func (l *EventLogger) Log(e harvest.Event) {
	attrs := []slog.Attr{
		slog.String("url", e.Task.URL),
		slog.Int("index", e.Task.Index),
		slog.String("stage", string(e.Stage)),
		slog.String("status", string(e.Status)),
	}

	level := slog.LevelDebug
	msg := "stage"
	switch e.Status {
	case harvest.EventRejected:
		level = slog.LevelWarn
		msg = "rejected"
		attrs = append(attrs,
			slog.String("code", harvest.ErrorCode(e.Err)),
			slog.String("reason", harvest.ErrorMessage(e.Err)),
		)
	case harvest.EventRetry:
		level = slog.LevelInfo
		msg = "retry"
		attrs = append(attrs, slog.String("reason", harvest.ErrorMessage(e.Err)))
	case harvest.EventEmpty:
		level = slog.LevelWarn
		msg = "no headings or paragraphs"
	}
	if e.Stage == harvest.StageDone {
		msg = "done"
		attrs = append(attrs, slog.Int("rows", e.Rows))
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
