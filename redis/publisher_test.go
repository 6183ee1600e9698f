package redis_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/texdex"
	texdexredis "github.com/fwojciec/texdex/redis"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddr = "localhost:6379"

// This test requires a running Redis instance.
// If Redis is not available, the test will be skipped.
func TestPublisher_PublishReport(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: testAddr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	stream := "texdex:test:" + uuid.NewString()
	defer client.Del(ctx, stream)

	publisher := texdexredis.NewPublisher(testAddr, stream)
	defer publisher.Close()
	require.NoError(t, publisher.Ping(ctx))

	report := &texdex.Report{
		RunID: "run-1",
		Sources: []*texdex.SourceReport{
			{Name: "Alpha", Added: 2, Found: 3},
			{Name: "Beta", Err: errors.New("HTTP 500")},
		},
		TotalAdded: 2,
	}
	require.NoError(t, publisher.PublishReport(ctx, report))

	entries, err := client.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	values := entries[0].Values
	assert.Equal(t, "run-1", values["run_id"])
	assert.Equal(t, "2", values["total_added"])

	var payload struct {
		RunID   string `json:"runId"`
		Sources []struct {
			Name  string `json:"name"`
			Added int    `json:"added"`
			Error string `json:"error"`
		} `json:"sources"`
	}
	require.NoError(t, json.Unmarshal([]byte(values["report"].(string)), &payload))
	assert.Equal(t, "run-1", payload.RunID)
	require.Len(t, payload.Sources, 2)
	assert.Equal(t, 2, payload.Sources[0].Added)
	assert.Equal(t, "HTTP 500", payload.Sources[1].Error)
}

func TestPublisher_Unreachable(t *testing.T) {
	t.Parallel()

	publisher := texdexredis.NewPublisher("127.0.0.1:1", "")
	defer publisher.Close()

	err := publisher.PublishReport(context.Background(), &texdex.Report{RunID: "run-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), texdexredis.DefaultStream)
}
