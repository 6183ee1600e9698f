package zerolog

import (
	"context"
	"time"

	"github.com/fwojciec/texdex"
	"github.com/rs/zerolog"
)

// Ensure LoggingFetcher implements texdex.Fetcher.
var _ texdex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   texdex.Fetcher
	logger zerolog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next texdex.Fetcher, logger zerolog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		ev := f.logger.Debug()
		if err != nil {
			ev = f.logger.Warn().Err(err)
		}
		ev.Str("url", url).
			Int("bytes", len(html)).
			Dur("duration", time.Since(begin)).
			Msg("fetch")
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
