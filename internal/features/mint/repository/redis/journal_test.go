package redis

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mint-agent-backend/internal/features/mint/models"
)

type recordingClient struct {
	redis.Cmdable
	args   *redis.XAddArgs
	err    error
	stream string
	count  int64
}

func (c *recordingClient) XRevRangeN(_ context.Context, stream, start, stop string, count int64) *redis.XMessageSliceCmd {
	cmd := redis.NewXMessageSliceCmd(context.Background())
	cmd.SetVal([]redis.XMessage{{
		ID: "1700000000000-0",
		Values: map[string]interface{}{
			"id":         "a-1",
			"wallet":     "0xabc",
			"variant":    "standard",
			"phase":      "public",
			"requested":  "4",
			"quantity":   "3",
			"amount":     "300",
			"status":     "failed",
			"error_code": "INSUFFICIENT_FUNDS",
			"started_at": "1700000000",
			"duration":   "250",
		},
	}})
	c.stream, c.count = stream, count
	return cmd
}

func (c *recordingClient) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	c.args = a
	return redis.NewStringResult("1700000000000-0", c.err)
}

func TestJournalRecord(t *testing.T) {
	client := &recordingClient{}
	j := NewJournal(client, "")

	err := j.Record(context.Background(), &models.Attempt{
		ID:        "a-1",
		Wallet:    "0xabc",
		Variant:   "erc1155whitelist",
		AssetID:   "7",
		Phase:     "presale",
		Requested: 3,
		Quantity:  2,
		Amount:    "100",
		Status:    models.AttemptSucceeded,
		StartedAt: time.Unix(1700000000, 0),
		Duration:  1500 * time.Millisecond,
	})
	require.NoError(t, err)

	require.NotNil(t, client.args)
	assert.Equal(t, defaultStream, client.args.Stream)
	assert.True(t, client.args.Approx)
	assert.Equal(t, int64(maxLen), client.args.MaxLen)

	values, ok := client.args.Values.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a-1", values["id"])
	assert.Equal(t, "3", values["requested"])
	assert.Equal(t, "2", values["quantity"])
	assert.Equal(t, "succeeded", values["status"])
	assert.Equal(t, int64(1700000000), values["started_at"])
	assert.Equal(t, int64(1500), values["duration"])
}

func TestJournalRecordError(t *testing.T) {
	client := &recordingClient{err: stderrors.New("connection refused")}
	j := NewJournal(client, "custom:stream")

	err := j.Record(context.Background(), &models.Attempt{ID: "a-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom:stream")
	assert.Equal(t, "custom:stream", client.args.Stream)
}

func TestJournalRecent(t *testing.T) {
	client := &recordingClient{}
	j := NewJournal(client, "")

	attempts, err := j.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, defaultStream, client.stream)
	assert.Equal(t, int64(20), client.count)

	require.Len(t, attempts, 1)
	a := attempts[0]
	assert.Equal(t, "a-1", a.ID)
	assert.Equal(t, uint64(4), a.Requested)
	assert.Equal(t, uint64(3), a.Quantity)
	assert.Equal(t, models.AttemptFailed, a.Status)
	assert.Equal(t, "INSUFFICIENT_FUNDS", a.ErrorCode)
	assert.Equal(t, int64(1700000000), a.StartedAt.Unix())
	assert.Equal(t, 250*time.Millisecond, a.Duration)
}
