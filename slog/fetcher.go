package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kitchensage"
)

// Ensure LoggingFetcher implements kitchensage.Fetcher.
var _ kitchensage.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   kitchensage.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next kitchensage.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, location string) (doc string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"location", location,
			"bytes", len(doc),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, location)
}
