// Package redis publishes ingestion reports to a Redis stream.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/texdex"
	"github.com/redis/go-redis/v9"
)

// DefaultStream is the stream key reports are appended to.
const DefaultStream = "texdex:reports"

// DefaultMaxLen is the approximate number of reports kept in the stream.
const DefaultMaxLen = 1000

// Ensure Publisher implements texdex.ReportPublisher.
var _ texdex.ReportPublisher = (*Publisher)(nil)

// Publisher appends each finished ingestion report to a Redis stream.
type Publisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewPublisher creates a Publisher connected to the Redis server at addr.
// An empty stream uses DefaultStream.
func NewPublisher(addr, stream string) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		stream: stream,
		maxLen: DefaultMaxLen,
	}
}

// sourceMessage is the published form of a texdex.SourceReport.
type sourceMessage struct {
	*texdex.SourceReport
	Error string `json:"error,omitempty"`
}

type reportMessage struct {
	RunID      string           `json:"runId"`
	Sources    []*sourceMessage `json:"sources"`
	TotalAdded int              `json:"totalAdded"`
}

// PublishReport appends report to the stream as a JSON payload alongside its
// run ID and total.
func (p *Publisher) PublishReport(ctx context.Context, report *texdex.Report) error {
	msg := reportMessage{RunID: report.RunID, TotalAdded: report.TotalAdded}
	for _, s := range report.Sources {
		m := &sourceMessage{SourceReport: s}
		if s.Err != nil {
			m.Error = s.Err.Error()
		}
		msg.Sources = append(msg.Sources, m)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"run_id":      report.RunID,
			"total_added": report.TotalAdded,
			"report":      string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish report to %s: %w", p.stream, err)
	}
	return nil
}

// Ping checks that the Redis server is reachable.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
