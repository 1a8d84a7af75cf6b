package generations

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/vertical-mint/internal/domain/nft"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

const (
	keyPrefix = "generation:token:"
	recentKey = "generations:recent"
)

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed generation repository
func NewRedis(client redis.UniversalClient) Repository {
	if client == nil {
		panic("redis client cannot be nil")
	}

	return &redisRepo{client: client}
}

func recordKey(tokenID uint64) string {
	return keyPrefix + strconv.FormatUint(tokenID, 10)
}

// Save writes the record and indexes it by creation time
func (r *redisRepo) Save(ctx context.Context, record *nft.Record) error {
	if record == nil {
		return errors.InvalidArgument("record cannot be nil")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, recordKey(record.TokenID), string(data), 0)
	pipe.ZAdd(ctx, recentKey, redis.Z{
		Score:  float64(record.CreatedAt.UnixMilli()),
		Member: strconv.FormatUint(record.TokenID, 10),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record for token %d: %w", record.TokenID, err)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, tokenID uint64) (*nft.Record, error) {
	data, err := r.client.Get(ctx, recordKey(tokenID)).Result()
	if err == redis.Nil {
		return nil, errors.NotFoundf("no generation for token %d", tokenID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record for token %d: %w", tokenID, err)
	}

	record := &nft.Record{}
	if err := json.Unmarshal([]byte(data), record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record for token %d: %w", tokenID, err)
	}
	return record, nil
}

// ListRecent reads the newest ids from the index then fetches them in one MGET.
// Index entries whose record has gone are skipped.
func (r *redisRepo) ListRecent(ctx context.Context, limit int) ([]*nft.Record, error) {
	if limit <= 0 {
		return nil, errors.InvalidArgument("limit must be positive")
	}

	ids, err := r.client.ZRevRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent generations: %w", err)
	}
	if len(ids) == 0 {
		return []*nft.Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent generations: %w", err)
	}

	out := make([]*nft.Record, 0, len(values))
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			continue
		}
		record := &nft.Record{}
		if err := json.Unmarshal([]byte(data), record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %s: %w", ids[i], err)
		}
		out = append(out, record)
	}
	return out, nil
}
