package zerolog

import (
	"context"

	"github.com/fwojciec/texdex"
	"github.com/rs/zerolog"
)

// Ensure LoggingReportPublisher implements texdex.ReportPublisher.
var _ texdex.ReportPublisher = (*LoggingReportPublisher)(nil)

// LoggingReportPublisher wraps a ReportPublisher and logs the outcome.
type LoggingReportPublisher struct {
	next   texdex.ReportPublisher
	logger zerolog.Logger
}

// NewLoggingReportPublisher creates a new LoggingReportPublisher.
func NewLoggingReportPublisher(next texdex.ReportPublisher, logger zerolog.Logger) *LoggingReportPublisher {
	return &LoggingReportPublisher{next: next, logger: logger}
}

// PublishReport delegates to the wrapped publisher.
func (p *LoggingReportPublisher) PublishReport(ctx context.Context, report *texdex.Report) error {
	err := p.next.PublishReport(ctx, report)
	if err != nil {
		p.logger.Warn().Err(err).Str("run_id", report.RunID).Msg("failed to publish report")
		return err
	}
	p.logger.Debug().Str("run_id", report.RunID).Msg("report published")
	return nil
}
