package artperiods

import (
	"context"
	"sync"

	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
	"github.com/KirkDiggler/vertical-mint/internal/errors"
)

// InMemoryRepository keeps periods for the life of the process.
// Useful for testing and development
type InMemoryRepository struct {
	mu      sync.RWMutex
	periods map[string]*artperiod.ArtPeriod
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		periods: make(map[string]*artperiod.ArtPeriod),
	}
}

// Save stores a copy of the period
func (r *InMemoryRepository) Save(ctx context.Context, period *artperiod.ArtPeriod) error {
	if period == nil {
		return errors.InvalidArgument("period cannot be nil")
	}
	if period.ID == "" {
		return errors.InvalidArgument("period ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.periods[period.ID] = period.Clone()
	return nil
}

// List returns copies of all periods
func (r *InMemoryRepository) List(ctx context.Context) ([]*artperiod.ArtPeriod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*artperiod.ArtPeriod, 0, len(r.periods))
	for _, p := range r.periods {
		out = append(out, p.Clone())
	}
	return out, nil
}
