package generations

import (
	"context"

	lru "github.com/hashicorp/golang-lru"

	"github.com/KirkDiggler/vertical-mint/internal/domain/nft"
)

const DefaultCacheSize = 512

// cachedRepo fronts Get with an LRU keyed by token id
type cachedRepo struct {
	Repository
	cache *lru.Cache
}

// NewCached wraps a repository with a read cache. Save refreshes the entry.
func NewCached(repo Repository, size int) Repository {
	if repo == nil {
		panic("repository cannot be nil")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, _ := lru.New(size) // Never errors for positive size.
	return &cachedRepo{Repository: repo, cache: cache}
}

func (c *cachedRepo) Save(ctx context.Context, record *nft.Record) error {
	if err := c.Repository.Save(ctx, record); err != nil {
		return err
	}
	c.cache.Add(record.TokenID, record.Clone())
	return nil
}

func (c *cachedRepo) Get(ctx context.Context, tokenID uint64) (*nft.Record, error) {
	if v, ok := c.cache.Get(tokenID); ok {
		return v.(*nft.Record).Clone(), nil
	}

	record, err := c.Repository.Get(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	c.cache.Add(tokenID, record.Clone())
	return record, nil
}
