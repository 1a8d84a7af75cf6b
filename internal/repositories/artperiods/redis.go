package artperiods

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

// hashKey holds every period as field id -> JSON
const hashKey = "artperiods"

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed period repository
func NewRedis(client redis.UniversalClient) Repository {
	if client == nil {
		panic("redis client cannot be nil")
	}

	return &redisRepo{client: client}
}

// Save writes the period into the hash
func (r *redisRepo) Save(ctx context.Context, period *artperiod.ArtPeriod) error {
	if period == nil {
		return errors.InvalidArgument("period cannot be nil")
	}
	if period.ID == "" {
		return errors.InvalidArgument("period ID is required")
	}

	data, err := json.Marshal(period)
	if err != nil {
		return fmt.Errorf("failed to marshal period: %w", err)
	}

	if err := r.client.HSet(ctx, hashKey, period.ID, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to save period %s: %w", period.ID, err)
	}

	return nil
}

// List reads every period from the hash
func (r *redisRepo) List(ctx context.Context) ([]*artperiod.ArtPeriod, error) {
	fields, err := r.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}

	out := make([]*artperiod.ArtPeriod, 0, len(fields))
	for id, raw := range fields {
		var p artperiod.ArtPeriod
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal period %s: %w", id, err)
		}
		out = append(out, &p)
	}

	return out, nil
}
