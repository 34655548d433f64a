// Package slog provides log/slog decorators for formpull services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/formpull"
)

// Ensure LoggingFetcher implements formpull.Fetcher.
var _ formpull.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   formpull.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next formpull.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchData delegates to the wrapped fetcher and logs the call.
func (f *LoggingFetcher) FetchData(ctx context.Context, req formpull.Request, flag bool) (resp *formpull.Response, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if resp != nil {
			bytes = len(resp.ResponseData)
		}
		f.logger.Info("fetch",
			"endpoint", string(req.Endpoint),
			"id", req.Parameters["id"],
			"bytes", bytes,
			"missing", err == nil && resp == nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchData(ctx, req, flag)
}
