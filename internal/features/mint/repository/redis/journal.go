package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"mint-agent-backend/internal/features/mint/models"
	"mint-agent-backend/internal/features/mint/repository"
)

const defaultStream = "mint:attempts"

// maxLen bounds the stream; older attempts are trimmed approximately.
const maxLen = 10000

type streamJournal struct {
	client redis.Cmdable
	stream string
}

// NewJournal appends attempts to a Redis stream.
func NewJournal(client redis.Cmdable, stream string) repository.Journal {
	if stream == "" {
		stream = defaultStream
	}
	return &streamJournal{client: client, stream: stream}
}

func (j *streamJournal) Record(ctx context.Context, a *models.Attempt) error {
	values := map[string]interface{}{
		"id":         a.ID,
		"wallet":     a.Wallet,
		"variant":    a.Variant,
		"asset_id":   a.AssetID,
		"phase":      a.Phase,
		"requested":  strconv.FormatUint(a.Requested, 10),
		"quantity":   strconv.FormatUint(a.Quantity, 10),
		"amount":     a.Amount,
		"tx_hash":    a.TxHash,
		"status":     string(a.Status),
		"error_code": a.ErrorCode,
		"error":      a.Error,
		"started_at": a.StartedAt.Unix(),
		"duration":   a.Duration.Milliseconds(),
	}
	err := j.client.XAdd(ctx, &redis.XAddArgs{
		Stream: j.stream,
		MaxLen: maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append attempt to %s: %w", j.stream, err)
	}
	return nil
}

func (j *streamJournal) Recent(ctx context.Context, limit int64) ([]models.Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	msgs, err := j.client.XRevRangeN(ctx, j.stream, "+", "-", limit).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read attempts from %s: %w", j.stream, err)
	}
	out := make([]models.Attempt, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, decodeAttempt(msg.Values))
	}
	return out, nil
}

func decodeAttempt(values map[string]interface{}) models.Attempt {
	str := func(key string) string {
		if v, ok := values[key].(string); ok {
			return v
		}
		return ""
	}
	u64 := func(key string) uint64 {
		n, _ := strconv.ParseUint(str(key), 10, 64)
		return n
	}
	i64 := func(key string) int64 {
		n, _ := strconv.ParseInt(str(key), 10, 64)
		return n
	}
	return models.Attempt{
		ID:        str("id"),
		Wallet:    str("wallet"),
		Variant:   str("variant"),
		AssetID:   str("asset_id"),
		Phase:     str("phase"),
		Requested: u64("requested"),
		Quantity:  u64("quantity"),
		Amount:    str("amount"),
		TxHash:    str("tx_hash"),
		Status:    models.AttemptStatus(str("status")),
		ErrorCode: str("error_code"),
		Error:     str("error"),
		StartedAt: time.Unix(i64("started_at"), 0),
		Duration:  time.Duration(i64("duration")) * time.Millisecond,
	}
}
