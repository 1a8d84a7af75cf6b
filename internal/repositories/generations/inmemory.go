package generations

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/vertical-mint/internal/domain/nft"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

// InMemoryRepository keeps records for the life of the process
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[uint64]*nft.Record
}

func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		records: make(map[uint64]*nft.Record),
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, record *nft.Record) error {
	if record == nil {
		return errors.InvalidArgument("record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.TokenID] = record.Clone()
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, tokenID uint64) (*nft.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[tokenID]
	if !ok {
		return nil, errors.NotFoundf("no generation for token %d", tokenID)
	}
	return record.Clone(), nil
}

func (r *InMemoryRepository) ListRecent(ctx context.Context, limit int) ([]*nft.Record, error) {
	if limit <= 0 {
		return nil, errors.InvalidArgument("limit must be positive")
	}

	r.mu.RLock()
	out := make([]*nft.Record, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, record.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].TokenID > out[j].TokenID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
